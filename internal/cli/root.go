// Package cli assembles the urtledger command tree. Commands are thin: each
// one loads config, opens the store, runs a single ledger operation, and
// renders the result; the storage layer owns all persistence semantics.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type globalFlags struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

type commandDeps struct {
	out     io.Writer
	globals *globalFlags
}

func NewRootCommand(out io.Writer, build BuildInfo) *cobra.Command {
	globals := &globalFlags{}
	deps := commandDeps{out: out, globals: globals}

	cmd := &cobra.Command{
		Use:           "urtledger",
		Short:         "Inventory batch ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", "", "Config file (TOML)")
	cmd.PersistentFlags().StringVar(&globals.DBPath, "db", "", "Ledger database file (default "+defaultLedgerPath+")")
	cmd.PersistentFlags().StringVar(&globals.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newInitCommand(deps),
		newStageCommand(deps),
		newGradeCommand(deps),
		newTypeCommand(deps),
		newBatchCommand(deps),
		newSummaryCommand(deps),
		newVersionCommand(out, build),
	)
	cmd.InitDefaultCompletionCmd()
	return cmd
}

func newVersionCommand(out io.Writer, build BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(build)
			}

			_, err := fmt.Fprintf(out, "version=%s commit=%s build_time=%s\n", build.Version, build.Commit, build.BuildTime)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
