package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/J-mazz/URTledger/internal/ledger"
	"github.com/J-mazz/URTledger/internal/storage"
)

// Stages and grades share the same command shape; only the wording and the
// store operation differ.
type classificationKind struct {
	use      string
	short    string
	singular string
	insert   func(context.Context, *ledger.Service, string) (int64, error)
	list     func(context.Context, *ledger.Service) ([]storage.ClassificationItem, error)
}

func newStageCommand(deps commandDeps) *cobra.Command {
	return newClassificationCommand(deps, classificationKind{
		use:      "stage",
		short:    "Processing stage management",
		singular: "stage",
		insert: func(ctx context.Context, svc *ledger.Service, name string) (int64, error) {
			return svc.Store().InsertStage(ctx, name)
		},
		list: func(ctx context.Context, svc *ledger.Service) ([]storage.ClassificationItem, error) {
			return svc.Store().ListStages(ctx)
		},
	})
}

func newGradeCommand(deps commandDeps) *cobra.Command {
	return newClassificationCommand(deps, classificationKind{
		use:      "grade",
		short:    "Quality grade management",
		singular: "grade",
		insert: func(ctx context.Context, svc *ledger.Service, name string) (int64, error) {
			return svc.Store().InsertGrade(ctx, name)
		},
		list: func(ctx context.Context, svc *ledger.Service) ([]storage.ClassificationItem, error) {
			return svc.Store().ListGrades(ctx)
		},
	})
}

func newClassificationCommand(deps commandDeps, kind classificationKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.use,
		Short: kind.short,
	}
	cmd.AddCommand(
		newClassificationAddCommand(deps, kind),
		newClassificationListCommand(deps, kind),
	)
	return cmd
}

func newClassificationAddCommand(deps commandDeps, kind classificationKind) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: fmt.Sprintf("Add a %s", kind.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return usageErrorf("%s add requires a non-empty name", kind.use)
			}
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				id, err := kind.insert(ctx, svc, name)
				if err != nil {
					return err
				}
				if id == 0 {
					_, err = fmt.Fprintf(deps.out, "%s %q already exists\n", kind.singular, name)
					return err
				}
				_, err = fmt.Fprintf(deps.out, "added %s %q (id %d)\n", kind.singular, name, id)
				return err
			})
		},
	}
}

func newClassificationListCommand(deps commandDeps, kind classificationKind) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: fmt.Sprintf("List %ss in insertion order", kind.singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				items, err := kind.list(ctx, svc)
				if err != nil {
					return err
				}
				for _, item := range items {
					if _, err := fmt.Fprintf(deps.out, "%d\t%s\n", item.ID, item.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
