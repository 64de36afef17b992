package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/J-mazz/URTledger/internal/ledger"
	"github.com/J-mazz/URTledger/internal/storage"
)

func newBatchCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Inventory batch operations",
	}
	cmd.AddCommand(
		newBatchAddCommand(deps),
		newBatchShowCommand(deps),
		newBatchListCommand(deps),
	)
	return cmd
}

func newBatchAddCommand(deps commandDeps) *cobra.Command {
	var (
		name      string
		typeID    int64
		gradeID   int64
		stageID   int64
		weight    float64
		price     float64
		specPairs []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new inventory batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return usageErrorf("batch add requires --name")
			}
			if weight < 0 {
				return usageErrorf("batch add --weight must not be negative")
			}
			specs, err := parseSpecPairs(specPairs)
			if err != nil {
				return usageErrorf("batch add: %v", err)
			}

			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				batch := &storage.Batch{
					Name:    name,
					TypeID:  typeID,
					GradeID: gradeID,
					StageID: stageID,
					Weight:  weight,
					Price:   price,
					Specs:   specs,
				}
				id, err := svc.Store().InsertBatch(ctx, batch)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(deps.out, "added batch %q (id %d, value %.2f)\n", name, id, batch.TotalValue())
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Batch label")
	cmd.Flags().Int64Var(&typeID, "type", 0, "Product type id")
	cmd.Flags().Int64Var(&gradeID, "grade", 0, "Grade id")
	cmd.Flags().Int64Var(&stageID, "stage", 0, "Stage id")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Batch weight")
	cmd.Flags().Float64Var(&price, "price", 0, "Unit price")
	cmd.Flags().StringSliceVar(&specPairs, "spec", nil, "Spec measurement KEY=VALUE (repeatable)")
	return cmd
}

func newBatchShowCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one batch including its spec measurements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return usageErrorf("batch show: %q is not a batch id", args[0])
			}
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				batch, err := svc.Store().GetBatch(ctx, id)
				if err != nil {
					return err
				}
				return printBatch(deps, batch)
			})
		},
	}
}

func newBatchListCommand(deps commandDeps) *cobra.Command {
	var stageID int64

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List batches in one stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("stage") {
				return usageErrorf("batch ls requires --stage")
			}
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				batches, err := svc.Store().ListBatchesByStage(ctx, stageID)
				if err != nil {
					return err
				}
				for _, batch := range batches {
					if _, err := fmt.Fprintf(deps.out, "%d\t%s\t%.2f\t%.2f\n", batch.ID, batch.Name, batch.Weight, batch.Price); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&stageID, "stage", 0, "Stage id")
	return cmd
}

func printBatch(deps commandDeps, batch *storage.Batch) error {
	_, err := fmt.Fprintf(deps.out, "id=%d name=%q type=%d grade=%d stage=%d weight=%.2f price=%.2f value=%.2f created_at=%s\n",
		batch.ID, batch.Name, batch.TypeID, batch.GradeID, batch.StageID, batch.Weight, batch.Price, batch.TotalValue(), batch.CreatedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(batch.Specs))
	for key := range batch.Specs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(deps.out, "  %s=%v\n", key, batch.Specs[key]); err != nil {
			return err
		}
	}
	return nil
}

func parseSpecPairs(pairs []string) (map[string]float64, error) {
	specs := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("spec %q is not KEY=VALUE", pair)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("spec %q has a non-numeric value", pair)
		}
		specs[key] = value
	}
	return specs, nil
}
