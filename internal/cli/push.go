package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/druryyl/btrade/internal/config"
	"github.com/druryyl/btrade/internal/syncer"
)

// pushTargets are the record families a push pass can cover.
var pushTargets = []string{"orders", "checkins", "locations", "all"}

// NewPushCommand creates the push command, which sends accumulated drafts
// to the sales service one record at a time.
func NewPushCommand(rootOpts *RootOptions) *cobra.Command {
	var concurrent bool

	cmd := &cobra.Command{
		Use:   "push [orders|checkins|locations|all]",
		Short: "Push draft records to the sales service",
		Long: `Push sends every draft record of the chosen family to the sales service.
Each record is delivered and marked SENT independently; a rejected or failed
record stays DRAFT and is retried on the next push.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "all"
			if len(args) == 1 {
				target = args[0]
			}
			if !isPushTarget(target) {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown push target %q: must be one of %v", target, pushTargets))
			}

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

			shape := syncer.Sequential
			if concurrent {
				shape = syncer.Concurrent
			}

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			onProgress := func(p syncer.Progress) {
				formatter.VerboseLog("  [%d/%d] %s", p.Current, p.Total, p.Label)
			}

			ctx := cmd.Context()
			var failed []string
			run := func(name string, push func() syncer.Outcome) error {
				outcome := push()
				switch o := outcome.(type) {
				case syncer.Success:
					if err := formatter.Success(pushResult{Target: name, Message: o.Message, Sent: o.Count}); err != nil {
						return err
					}
				case syncer.Failure:
					failed = append(failed, name)
					details := ""
					if o.Err != nil {
						details = o.Err.Error()
					}
					if err := formatter.Error("E101", fmt.Sprintf("%s: %s", name, o.Message), details); err != nil {
						return err
					}
				}
				return nil
			}

			if target == "orders" || target == "all" {
				s := syncer.NewOrderSyncer(st, client, shape)
				if err := run("orders", func() syncer.Outcome { return s.Push(ctx, onProgress) }); err != nil {
					return err
				}
			}
			if target == "checkins" || target == "all" {
				s := syncer.NewCheckInSyncer(st, client, shape)
				if err := run("checkins", func() syncer.Outcome { return s.Push(ctx, onProgress) }); err != nil {
					return err
				}
			}
			if target == "locations" || target == "all" {
				s := syncer.NewLocationSyncer(st, client, shape, cfg.UserName, nil)
				if err := run("locations", func() syncer.Outcome { return s.Push(ctx, onProgress) }); err != nil {
					return err
				}
			}

			if len(failed) > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("push failed for: %v", failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "push all records of a family at once instead of one by one")

	return cmd
}

// pushResult is the per-family success payload for push output.
type pushResult struct {
	Target  string `json:"target"`
	Message string `json:"message"`
	Sent    int    `json:"sent"`
}

func (r pushResult) String() string {
	return fmt.Sprintf("%s: %s", r.Target, r.Message)
}

func isPushTarget(t string) bool {
	for _, v := range pushTargets {
		if v == t {
			return true
		}
	}
	return false
}
