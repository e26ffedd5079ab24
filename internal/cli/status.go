package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/druryyl/btrade/internal/config"
	"github.com/druryyl/btrade/internal/model"
)

// NewStatusCommand creates the status command, which reports how much
// unsynced work the device is holding.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show draft and sent counts per record family",
		Args:  cobra.NoArgs,
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

			ctx := cmd.Context()
			orders, err := st.Orders(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read orders", err)
			}
			checkIns, err := st.CheckIns(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read check-ins", err)
			}
			dirty, err := st.DirtyLocationCustomers(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read location updates", err)
			}

			report := statusReport{
				Orders:           countStatuses(orders, func(o model.Order) model.SyncStatus { return o.Status }),
				CheckIns:         countStatuses(checkIns, func(c model.CheckIn) model.SyncStatus { return c.Status }),
				PendingLocations: len(dirty),
			}

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return formatter.Success(report)
		},
	}

	return cmd
}

// statusCounts splits a record family by sync status.
type statusCounts struct {
	Draft int `json:"draft"`
	Sent  int `json:"sent"`
}

// statusReport is the success payload for status.
type statusReport struct {
	Orders           statusCounts `json:"orders"`
	CheckIns         statusCounts `json:"checkins"`
	PendingLocations int          `json:"pending_locations"`
}

func (r statusReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "orders:    %d draft, %d sent\n", r.Orders.Draft, r.Orders.Sent)
	fmt.Fprintf(&b, "checkins:  %d draft, %d sent\n", r.CheckIns.Draft, r.CheckIns.Sent)
	fmt.Fprintf(&b, "locations: %d pending update(s)", r.PendingLocations)
	return b.String()
}

func countStatuses[T any](rows []T, status func(T) model.SyncStatus) statusCounts {
	var c statusCounts
	for _, r := range rows {
		switch status(r) {
		case model.StatusDraft:
			c.Draft++
		case model.StatusSent:
			c.Sent++
		}
	}
	return c
}
