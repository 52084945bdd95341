/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/defaults"
	"github.com/semalabs/sema/pkg/intent"
	"github.com/semalabs/sema/pkg/resolver"
	"github.com/semalabs/sema/pkg/serializer"
)

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "resolve",
		EnableShellCompletion: true,
		Usage:                 "Run one ad-hoc resolution pass for a single service",
		Description: `Resolve monitoring intents for one service without a spec file. Useful for
inspecting what a generate run would bind before committing a spec.

# Examples

Resolve all PostgreSQL intents:
  sema resolve --service orders-db --selector 'job="orders-db"' --tech postgres

Resolve specific intents only:
  sema resolve --service orders-db --selector 'job="orders-db"' \
    --intent db.connections.used --intent db.cache_hit_ratio

Pin an intent to a known metric:
  sema resolve --service orders-db --selector 'job="orders-db"' --tech postgres \
    --override db.connections.used=custom_pg_connections`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "service",
				Required: true,
				Usage:    "Service identifier",
			},
			&cli.StringFlag{
				Name:     "selector",
				Required: true,
				Usage:    `Label selector scoping the service (e.g. job="orders-db")`,
			},
			&cli.StringSliceFlag{
				Name: "tech",
				Usage: fmt.Sprintf("Technology to resolve intents for, repeatable (supported values: %s)",
					classifier.SupportedTechnologies()),
			},
			&cli.StringSliceFlag{
				Name:  "intent",
				Usage: "Exact intent key to resolve, repeatable (overrides --tech)",
			},
			&cli.StringSliceFlag{
				Name:  "override",
				Usage: "Intent override (format: intent.key=metric_name, repeatable)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Budget for the resolution pass (0 = default)",
			},
			backendFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			overrides, err := parseOverrides(cmd.StringSlice("override"))
			if err != nil {
				return err
			}

			var techs []classifier.Technology
			for _, raw := range cmd.StringSlice("tech") {
				tech, ok := classifier.ParseTechnology(raw)
				if !ok {
					return fmt.Errorf("unknown technology %q (supported: %s)",
						raw, classifier.SupportedTechnologies())
				}
				techs = append(techs, tech)
			}
			var keys []intent.Key
			for _, raw := range cmd.StringSlice("intent") {
				keys = append(keys, intent.Key(raw))
			}

			disc, err := newDiscoveryClient(cfg)
			if err != nil {
				return err
			}
			engine, err := resolver.New(disc)
			if err != nil {
				return err
			}

			runCtx, cancel := context.WithTimeout(ctx, runTimeout(cmd, defaults.DiscoveryTimeout))
			defer cancel()

			res, err := engine.Resolve(runCtx, &resolver.Request{
				Service:      cmd.String("service"),
				Selector:     cmd.String("selector"),
				Technologies: techs,
				Intents:      keys,
				Overrides:    overrides,
			})
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer serializer.CloseQuietly(w)
			return w.Serialize(ctx, res)
		},
	}
}
