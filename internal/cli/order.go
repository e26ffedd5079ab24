package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/druryyl/btrade/internal/config"
	"github.com/druryyl/btrade/internal/ident"
	"github.com/druryyl/btrade/internal/model"
	"github.com/druryyl/btrade/internal/pricing"
	"github.com/druryyl/btrade/internal/store"
)

// orderDraft is the YAML shape of an order definition file.
type orderDraft struct {
	Customer    string           `yaml:"customer"`    // customer code in the local mirror
	SalesPerson string           `yaml:"salesperson"` // salesperson code in the local mirror
	Date        string           `yaml:"date"`        // yyyy-MM-dd, defaults to today
	Note        string           `yaml:"note"`
	Lines       []orderDraftLine `yaml:"lines"`
}

type orderDraftLine struct {
	Item     string  `yaml:"item"` // item code in the local mirror
	QtyBig   int     `yaml:"qty_big"`
	QtySmall int     `yaml:"qty_small"`
	QtyBonus int     `yaml:"qty_bonus"`
	Disc1    float64 `yaml:"disc1"`
	Disc2    float64 `yaml:"disc2"`
	Disc3    float64 `yaml:"disc3"`
	Disc4    float64 `yaml:"disc4"`
}

// NewOrderCommand creates the order command group.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage draft sales orders",
	}

	cmd.AddCommand(newOrderImportCommand(rootOpts))
	cmd.AddCommand(newOrderListCommand(rootOpts))

	return cmd
}

func newOrderImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Price a YAML order definition and save it as a DRAFT",
		Long: `Import reads an order definition, resolves its customer, salesperson and
item codes against the local mirrors, snapshots their current values, prices
each line through the discount cascade and persists the result as a DRAFT.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(rootOpts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			configureLogging(cfg, rootOpts.Verbose)

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read order file", err)
			}
			var draft orderDraft
			if err := yaml.Unmarshal(raw, &draft); err != nil {
				return WrapExitError(ExitCommandError, "failed to parse order file", err)
			}
			if len(draft.Lines) == 0 {
				return NewExitError(ExitCommandError, "order file has no lines")
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			order, items, err := buildOrder(cmd.Context(), st, cfg, draft)
			if err != nil {
				return err
			}

			if err := st.SaveOrder(cmd.Context(), order); err != nil {
				return WrapExitError(ExitCommandError, "failed to save order", err)
			}
			for _, it := range items {
				if _, err := st.AddOrderItem(cmd.Context(), it); err != nil {
					return WrapExitError(ExitCommandError, "failed to save order line", err)
				}
			}

			saved, err := st.GetOrder(cmd.Context(), order.ID)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to reload order", err)
			}

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return formatter.Success(orderImportResult{
				ID:          saved.ID,
				LocalCode:   saved.LocalCode,
				Customer:    saved.CustomerName,
				Lines:       len(items),
				TotalAmount: saved.TotalAmount,
			})
		},
	}
}

// buildOrder resolves mirror codes, assigns identifiers and prices the lines.
// The order is returned with TotalAmount zero; the store recomputes it as
// lines are added.
func buildOrder(ctx context.Context, st *store.Store, cfg config.Config, draft orderDraft) (model.Order, []model.OrderItem, error) {
	customer, err := findCustomerByCode(ctx, st, draft.Customer)
	if err != nil {
		return model.Order{}, nil, err
	}
	salesPerson, err := findSalesPersonByCode(ctx, st, draft.SalesPerson)
	if err != nil {
		return model.Order{}, nil, err
	}

	seq := ident.NewSequence(st, "order", cfg.DeviceCode, time.Now)
	localCode, err := seq.Next(ctx)
	if err != nil {
		return model.Order{}, nil, WrapExitError(ExitCommandError, "failed to assign order code", err)
	}

	date := draft.Date
	if date == "" {
		date = model.DateString(time.Now())
	}

	order := model.Order{
		ID:        ident.New(),
		LocalCode: localCode,
		OrderDate: date,
		Note:      draft.Note,
		UserName:  cfg.UserName,
		Status:    model.StatusDraft,

		CustomerID:      customer.ID,
		CustomerCode:    customer.Code,
		CustomerName:    customer.Name,
		CustomerAddress: customer.Address,
		CustomerLat:     customer.Lat,
		CustomerLon:     customer.Lon,

		SalesPersonID:   salesPerson.ID,
		SalesPersonCode: salesPerson.Code,
		SalesPersonName: salesPerson.Name,
	}

	items := make([]model.OrderItem, 0, len(draft.Lines))
	for i, line := range draft.Lines {
		item, err := findItemByCode(ctx, st, line.Item)
		if err != nil {
			return model.Order{}, nil, err
		}
		if line.QtyBig == 0 && line.QtySmall == 0 && line.QtyBonus == 0 {
			return model.Order{}, nil, NewExitError(ExitCommandError, fmt.Sprintf("line %d (%s) has no quantity", i+1, line.Item))
		}

		it := model.OrderItem{
			OrderID:      order.ID,
			ItemCode:     item.Code,
			ItemName:     item.Name,
			ItemCategory: item.Category,
			UnitBig:      item.UnitBig,
			UnitSmall:    item.UnitSmall,
			Conversion:   item.Conversion,
			QtyBig:       line.QtyBig,
			QtySmall:     line.QtySmall,
			QtyBonus:     line.QtyBonus,
			UnitPrice:    item.UnitPrice,
			Disc1:        pricing.ClampRate(line.Disc1),
			Disc2:        pricing.ClampRate(line.Disc2),
			Disc3:        pricing.ClampRate(line.Disc3),
			Disc4:        pricing.ClampRate(line.Disc4),
		}
		it.LineTotal = pricing.LineTotal(pricing.ItemInput(it))
		items = append(items, it)
	}

	return order, items, nil
}

func findCustomerByCode(ctx context.Context, st *store.Store, code string) (model.Customer, error) {
	rows, err := st.Customers(ctx)
	if err != nil {
		return model.Customer{}, WrapExitError(ExitCommandError, "failed to read customer mirror", err)
	}
	for _, c := range rows {
		if c.Code == code {
			return c, nil
		}
	}
	return model.Customer{}, NewExitError(ExitCommandError, fmt.Sprintf("customer %q not in local mirror: run pull first", code))
}

func findSalesPersonByCode(ctx context.Context, st *store.Store, code string) (model.SalesPerson, error) {
	rows, err := st.SalesPersons(ctx)
	if err != nil {
		return model.SalesPerson{}, WrapExitError(ExitCommandError, "failed to read salesperson mirror", err)
	}
	for _, sp := range rows {
		if sp.Code == code {
			return sp, nil
		}
	}
	return model.SalesPerson{}, NewExitError(ExitCommandError, fmt.Sprintf("salesperson %q not in local mirror: run pull first", code))
}

func findItemByCode(ctx context.Context, st *store.Store, code string) (model.Item, error) {
	rows, err := st.Items(ctx)
	if err != nil {
		return model.Item{}, WrapExitError(ExitCommandError, "failed to read item mirror", err)
	}
	for _, it := range rows {
		if it.Code == code {
			return it, nil
		}
	}
	return model.Item{}, NewExitError(ExitCommandError, fmt.Sprintf("item %q not in local mirror: run pull first", code))
}

// orderImportResult is the success payload for order import.
type orderImportResult struct {
	ID          string  `json:"id"`
	LocalCode   string  `json:"local_code"`
	Customer    string  `json:"customer"`
	Lines       int     `json:"lines"`
	TotalAmount float64 `json:"total_amount"`
}

func (r orderImportResult) String() string {
	return fmt.Sprintf("saved draft %s (%s) for %s: %d lines, total %.2f", r.LocalCode, r.ID, r.Customer, r.Lines, r.TotalAmount)
}

func newOrderListCommand(rootOpts *RootOptions) *cobra.Command {
	var draftOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List captured orders",
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

			var orders []model.Order
			if draftOnly {
				orders, err = st.DraftOrders(cmd.Context())
			} else {
				orders, err = st.Orders(cmd.Context())
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read orders", err)
			}

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			if rootOpts.Format == "json" {
				return formatter.Success(orders)
			}
			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no orders")
				return nil
			}
			for _, o := range orders {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %-6s %-30s %12.2f\n",
					o.OrderDate, o.LocalCode, o.Status, o.CustomerName, o.TotalAmount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&draftOnly, "draft", false, "show only DRAFT orders")

	return cmd
}
