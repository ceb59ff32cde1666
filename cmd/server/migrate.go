package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return fail(cmd, err)
			}
			defer func() { _ = logger.Sync() }()

			ctx := contextOrBackground(cmd.Context())
			gateway, err := db.Open(ctx, cfg, logger.Named("db"))
			if err != nil {
				return fail(cmd, err)
			}
			defer gateway.Close()

			applied, err := db.Migrate(ctx, gateway)
			if err != nil {
				return fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, faint("schema is up to date"), "("+gateway.Dialect()+")")
				return nil
			}
			for _, version := range applied {
				fmt.Fprintln(out, green("applied"), version)
			}
			return nil
		},
	}
}
