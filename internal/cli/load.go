package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/catalog"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/config"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <catalog.csv>",
		Short: "Import a player catalog into the pool",
		Long: `Import a player catalog CSV into the pool lists.

Players are grouped into lists by their "Set" column, in file order.
Teams and retained players are seeded from the config file first, so
the command is safe to run on a fresh database.

Example:
  auctiond load --config ./auction.yaml ./players.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	return cmd
}

func runLoad(opts *LoadOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := db.InitTeams(ctx, cfg.Seeds()); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed teams", err)
	}
	if err := cfg.SeedRetained(ctx, db); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed retained players", err)
	}

	res, err := catalog.LoadFile(ctx, db, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to import catalog", err)
	}

	return out.Success(fmt.Sprintf("imported %d players into %d lists", res.Players, len(res.Lists)))
}
