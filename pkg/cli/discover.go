/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/semalabs/sema/pkg/defaults"
	"github.com/semalabs/sema/pkg/serializer"
)

func discoverCmd() *cli.Command {
	return &cli.Command{
		Name:                  "discover",
		EnableShellCompletion: true,
		Usage:                 "Inspect the live metric inventory for a selector",
		Description: `Query the metrics backend for every series matching the selector over the
lookback window and print the classified inventory: metric names, inferred
value kinds, technology tags, and observed labels.

# Examples

  sema discover --selector 'job="orders-db"' --backend http://prometheus:9090
  sema discover --selector 'namespace="payments"' -t table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "selector",
				Required: true,
				Usage:    `Label selector scoping the inventory (e.g. job="orders-db")`,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Budget for the discovery call (0 = default)",
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

			disc, err := newDiscoveryClient(cfg)
			if err != nil {
				return err
			}

			runCtx, cancel := context.WithTimeout(ctx, runTimeout(cmd, defaults.DiscoveryTimeout))
			defer cancel()

			inventory, err := disc.Discover(runCtx, cmd.String("selector"))
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer serializer.CloseQuietly(w)
			return w.Serialize(ctx, inventory)
		},
	}
}
