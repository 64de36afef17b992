package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/J-mazz/URTledger/internal/ledger"
)

func newInitCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the ledger file and seed baseline stages and grades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				if err := svc.Store().SeedDefaults(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintf(deps.out, "ledger ready at %s\n", svc.Store().Path())
				return err
			})
		},
	}
}
