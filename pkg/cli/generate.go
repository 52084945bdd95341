/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/semalabs/sema/pkg/generator"
	"github.com/semalabs/sema/pkg/resolver"
	"github.com/semalabs/sema/pkg/serializer"
	"github.com/semalabs/sema/pkg/servicespec"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		EnableShellCompletion: true,
		Usage:                 "Generate dashboard artifacts for every service in a spec",
		Description: `Resolve every service declared in a service spec against the live metrics
backend and emit one dashboard artifact per service, plus run-level
diagnostics for services whose backend was unreachable.

Each requested intent lands in exactly one of three states:
  - bound to a metric that exists on the backend
  - synthesized from other bound metrics
  - a guidance panel naming the missing exporter

# Examples

Generate to stdout in YAML:
  sema generate --spec services.yaml --backend http://prometheus:9090

Write the report to a file as JSON:
  sema generate --spec services.yaml -o report.json -t json

Publish to a ConfigMap for the Grafana dashboard sidecar:
  sema generate --spec services.yaml -o cm://monitoring/sema-dashboards`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "spec",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Path to the service spec file",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Number of services to resolve in parallel (0 = config default)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Total budget for the run (0 = config default)",
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

			spec, err := servicespec.LoadFile(cmd.String("spec"))
			if err != nil {
				return err
			}

			disc, err := newDiscoveryClient(cfg)
			if err != nil {
				return err
			}
			engine, err := resolver.New(disc)
			if err != nil {
				return err
			}

			concurrency := cfg.Generate.Concurrency
			if n := cmd.Int("concurrency"); n > 0 {
				concurrency = n
			}
			gen, err := generator.New(engine, generator.WithConcurrency(concurrency))
			if err != nil {
				return err
			}

			runCtx, cancel := context.WithTimeout(ctx, runTimeout(cmd, cfg.Generate.Timeout))
			defer cancel()

			start := time.Now()
			report, err := gen.Run(runCtx, spec)
			if err != nil {
				return fmt.Errorf("generation run failed: %w", err)
			}
			slog.Debug("run finished", "duration", time.Since(start))

			output := cmd.String("output")
			if output == "" {
				output = cfg.Output.Path
			}
			w := serializer.NewFileWriterOrStdout(outFormat, output)
			defer serializer.CloseQuietly(w)
			return w.Serialize(ctx, report)
		},
	}
}
