package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/druryyl/btrade/internal/config"
	"github.com/druryyl/btrade/internal/ident"
	"github.com/druryyl/btrade/internal/model"
)

// NewCheckInCommand creates the checkin command, which records a DRAFT
// customer visit with the device's GPS reading.
func NewCheckInCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		customerCode string
		lat          float64
		lon          float64
		accuracy     float64
	)

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a customer visit",
		Long: `Checkin saves a timestamped visit against a customer from the local
mirror. The record stays DRAFT until the next push delivers it.`,
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

			customer, err := findCustomerByCode(cmd.Context(), st, customerCode)
			if err != nil {
				return err
			}

			now := time.Now()
			checkIn := model.CheckIn{
				ID:       ident.New(),
				Date:     model.DateString(now),
				Time:     model.TimeString(now),
				UserName: cfg.UserName,
				Lat:      lat,
				Lon:      lon,
				Accuracy: accuracy,
				Status:   model.StatusDraft,

				CustomerID:   customer.ID,
				CustomerCode: customer.Code,
				CustomerName: customer.Name,
			}
			if err := st.SaveCheckIn(cmd.Context(), checkIn); err != nil {
				return WrapExitError(ExitCommandError, "failed to save check-in", err)
			}

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return formatter.Success(checkInResult{
				ID:       checkIn.ID,
				Customer: customer.Name,
				Date:     checkIn.Date,
				Time:     checkIn.Time,
			})
		},
	}

	cmd.Flags().StringVar(&customerCode, "customer", "", "customer code in the local mirror (required)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the visit (required)")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of the visit (required)")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 0, "GPS accuracy in meters")
	cmd.MarkFlagRequired("customer")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lon")

	return cmd
}

// checkInResult is the success payload for checkin.
type checkInResult struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (r checkInResult) String() string {
	return fmt.Sprintf("checked in at %s on %s %s (%s)", r.Customer, r.Date, r.Time, r.ID)
}
