package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/J-mazz/URTledger/internal/ledger"
)

func newTypeCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Product type management",
	}
	cmd.AddCommand(
		newTypeAddCommand(deps),
		newTypeListCommand(deps),
	)
	return cmd
}

func newTypeAddCommand(deps commandDeps) *cobra.Command {
	var specKeys []string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a product type with its expected spec keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return usageErrorf("type add requires a non-empty name")
			}
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				id, err := svc.Store().InsertProductType(ctx, name, specKeys)
				if err != nil {
					return err
				}
				if id == 0 {
					_, err = fmt.Fprintf(deps.out, "type %q already exists\n", name)
					return err
				}
				_, err = fmt.Fprintf(deps.out, "added type %q (id %d)\n", name, id)
				return err
			})
		},
	}

	cmd.Flags().StringSliceVar(&specKeys, "key", nil, "Expected spec key (repeatable, order preserved)")
	return cmd
}

func newTypeListCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List product types and their spec keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLedger(cmd.Context(), deps, func(ctx context.Context, svc *ledger.Service) error {
				types, err := svc.Store().ListProductTypes(ctx)
				if err != nil {
					return err
				}
				for _, pt := range types {
					keys := "-"
					if len(pt.SpecKeys) > 0 {
						keys = strings.Join(pt.SpecKeys, ",")
					}
					if _, err := fmt.Fprintf(deps.out, "%d\t%s\t%s\n", pt.ID, pt.Name, keys); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
