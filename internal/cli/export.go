package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/config"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/report"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export rosters as CSV",
		Long: `Export every rostered player as CSV, one row per player, for
spreadsheet import. Writes to stdout unless --output is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write CSV to file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer db.Close()

	snap, err := report.BuildSnapshot(cmd.Context(), db)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read standings", err)
	}

	w := cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		w = f
	}
	if err := report.ExportCSV(w, snap); err != nil {
		return WrapExitError(ExitCommandError, "failed to write CSV", err)
	}
	return nil
}
