package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/J-mazz/URTledger/internal/ledger"
)

func newSummaryCommand(deps commandDeps) *cobra.Command {
	var stageID int64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Per-stage weight and batch count totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				if cmd.Flags().Changed("stage") {
					totals := svc.AggregateStage(ctx, stageID)
					_, err := fmt.Fprintf(deps.out, "stage %d: %.2f total weight in %d batches\n", stageID, totals.TotalWeight, totals.Count)
					return err
				}

				summaries, err := svc.Summaries(ctx)
				if err != nil {
					return err
				}
				for _, summary := range summaries {
					if _, err := fmt.Fprintf(deps.out, "%-12s %8.2f %4d\n", summary.Stage.Name, summary.Totals.TotalWeight, summary.Totals.Count); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&stageID, "stage", 0, "Limit the summary to one stage id")
	return cmd
}
