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
	"github.com/semalabs/sema/pkg/intent"
	"github.com/semalabs/sema/pkg/serializer"
)

func intentsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "intents",
		EnableShellCompletion: true,
		Usage:                 "List the built-in intent catalog",
		Description: `List every intent the built-in catalog declares: key, technology, signal
kind, candidate metrics, and synthesis rules. Scope with --tech to see what a
service tagged with that technology would resolve.

# Examples

  sema intents
  sema intents --tech postgres -t table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "tech",
				Usage: fmt.Sprintf("Only list intents for this technology (supported values: %s)",
					classifier.SupportedTechnologies()),
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			registry, err := intent.Default()
			if err != nil {
				return err
			}

			var list []*intent.Intent
			if raw := cmd.String("tech"); raw != "" {
				tech, ok := classifier.ParseTechnology(raw)
				if !ok {
					return fmt.Errorf("unknown technology %q (supported: %s)",
						raw, classifier.SupportedTechnologies())
				}
				list = registry.ListByTechnology(tech)
			} else {
				list = registry.List()
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer serializer.CloseQuietly(w)
			return w.Serialize(ctx, list)
		},
	}
}
