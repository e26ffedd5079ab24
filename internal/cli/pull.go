package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/druryyl/btrade/internal/config"
	"github.com/druryyl/btrade/internal/syncer"
)

// NewPullCommand creates the pull command, which refreshes the local
// master-data mirrors from the sales service.
func NewPullCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Refresh master data from the sales service",
		Long: `Pull downloads the item catalog, customer list and salesperson list and
replaces the local mirrors wholesale. Locally re-pinned customer coordinates
that have not been pushed yet survive the replace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(rootOpts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			configureLogging(cfg, rootOpts.Verbose)

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			puller := syncer.NewPuller(st, client)
			if err := puller.PullAll(cmd.Context()); err != nil {
				return WrapExitError(ExitFailure, "pull failed", err)
			}

			ctx := cmd.Context()
			items, err := st.Items(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to count items", err)
			}
			customers, err := st.Customers(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to count customers", err)
			}
			salesPersons, err := st.SalesPersons(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to count salespersons", err)
			}

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return formatter.Success(pullResult{
				Items:        len(items),
				Customers:    len(customers),
				SalesPersons: len(salesPersons),
			})
		},
	}

	return cmd
}

// pullResult reports the mirror sizes after a pull.
type pullResult struct {
	Items        int `json:"items"`
	Customers    int `json:"customers"`
	SalesPersons int `json:"sales_persons"`
}

func (r pullResult) String() string {
	return fmt.Sprintf("pulled %d items, %d customers, %d salespersons", r.Items, r.Customers, r.SalesPersons)
}
