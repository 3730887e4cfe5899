package cli

import (
	"github.com/spf13/cobra"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/config"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/report"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Squads bool
	Sales  bool
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show auction standings",
		Long: `Show team standings from the database: purse remaining, spend,
squad sizes and overseas counts. Add --squads for full rosters or
--sales for the disposition log.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Squads, "squads", false, "show full rosters")
	cmd.Flags().BoolVar(&opts.Sales, "sales", false, "show the disposition log")

	return cmd
}

func runStatus(opts *StatusOptions, cmd *cobra.Command) error {
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

	if opts.Format == "json" {
		out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return out.Success(snap)
	}

	w := cmd.OutOrStdout()
	switch {
	case opts.Squads:
		return report.WriteSquads(w, snap)
	case opts.Sales:
		return report.WriteSales(w, snap)
	default:
		return report.WriteStandings(w, snap)
	}
}
