package cli

import (
	"github.com/spf13/cobra"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/config"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	Yes bool
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all auction data",
		Long: `Reset the database to its pre-auction state: purses restored,
rosters, pools, bids, sales and trades cleared. Requires --yes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm the wipe")

	return cmd
}

func runReset(opts *ResetOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if !opts.Yes {
		out.Error("CONFIRM_REQUIRED", "reset wipes all auction data; re-run with --yes")
		return &ExitError{Code: ExitFailure, Message: "reset not confirmed"}
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer db.Close()

	if err := db.FullReset(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "failed to reset database", err)
	}
	return out.Success("auction data cleared")
}
