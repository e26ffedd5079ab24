package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/druryyl/btrade/internal/model"
	"github.com/druryyl/btrade/internal/transport"
)

// eventLog records the interleaving of pushes and local writes so tests can
// assert ordering between them.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

// fakeOrderStore holds drafts in memory and records status flips.
type fakeOrderStore struct {
	mu       sync.Mutex
	drafts   []model.Order
	items    map[string][]model.OrderItem
	sent     map[string]string // id -> faktur code
	queryErr error
	log      *eventLog
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		items: map[string][]model.OrderItem{},
		sent:  map[string]string{},
		log:   &eventLog{},
	}
}

func (f *fakeOrderStore) DraftOrders(context.Context) ([]model.Order, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return append([]model.Order(nil), f.drafts...), nil
}

func (f *fakeOrderStore) OrderItems(_ context.Context, orderID string) ([]model.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[orderID], nil
}

func (f *fakeOrderStore) MarkOrderSent(_ context.Context, id, fakturCode string) error {
	f.mu.Lock()
	f.sent[id] = fakturCode
	f.mu.Unlock()
	f.log.add("mark:%s", id)
	return nil
}

func (f *fakeOrderStore) sentIDs() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.sent))
	for k, v := range f.sent {
		out[k] = v
	}
	return out
}

// fakeOrderPusher scripts per-order outcomes.
type fakeOrderPusher struct {
	mu      sync.Mutex
	pushed  []transport.WireOrder
	failing map[string]error  // transport-level error by order id
	reject  map[string]string // application rejection message by order id
	faktur  map[string]string // faktur code returned on accept
	delay   map[string]time.Duration
	log     *eventLog
}

func newFakeOrderPusher(log *eventLog) *fakeOrderPusher {
	return &fakeOrderPusher{
		failing: map[string]error{},
		reject:  map[string]string{},
		faktur:  map[string]string{},
		delay:   map[string]time.Duration{},
		log:     log,
	}
}

func (f *fakeOrderPusher) PushOrder(ctx context.Context, w transport.WireOrder) (transport.Response, error) {
	if d := f.delay[w.OrderID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return transport.Response{}, ctx.Err()
		}
	}

	f.mu.Lock()
	f.pushed = append(f.pushed, w)
	f.mu.Unlock()
	f.log.add("push:%s", w.OrderID)

	if err := f.failing[w.OrderID]; err != nil {
		return transport.Response{}, err
	}
	if msg := f.reject[w.OrderID]; msg != "" {
		return transport.Response{Status: "error", Message: msg}, nil
	}
	return transport.Response{Status: "success", Data: f.faktur[w.OrderID]}, nil
}

func (f *fakeOrderPusher) pushedOrders() []transport.WireOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]transport.WireOrder(nil), f.pushed...)
}

// fakeCheckInStore mirrors fakeOrderStore for check-ins.
type fakeCheckInStore struct {
	mu       sync.Mutex
	drafts   []model.CheckIn
	sent     map[string]bool
	queryErr error
}

func newFakeCheckInStore() *fakeCheckInStore {
	return &fakeCheckInStore{sent: map[string]bool{}}
}

func (f *fakeCheckInStore) DraftCheckIns(context.Context) ([]model.CheckIn, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return append([]model.CheckIn(nil), f.drafts...), nil
}

func (f *fakeCheckInStore) MarkCheckInSent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[id] = true
	return nil
}

type fakeCheckInPusher struct {
	failing map[string]error
	reject  map[string]string
}

func (f *fakeCheckInPusher) PushCheckIn(_ context.Context, w transport.WireCheckIn) (transport.Response, error) {
	if err := f.failing[w.CheckInID]; err != nil {
		return transport.Response{}, err
	}
	if msg := f.reject[w.CheckInID]; msg != "" {
		return transport.Response{Status: "error", Message: msg}, nil
	}
	return transport.Response{Status: "success"}, nil
}

// fakeLocationStore mirrors the dirty-flag draft condition.
type fakeLocationStore struct {
	mu      sync.Mutex
	dirty   []model.Customer
	cleared map[string]bool
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{cleared: map[string]bool{}}
}

func (f *fakeLocationStore) DirtyLocationCustomers(context.Context) ([]model.Customer, error) {
	return append([]model.Customer(nil), f.dirty...), nil
}

func (f *fakeLocationStore) ClearLocationDirty(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared[id] = true
	return nil
}

type fakeLocationPusher struct {
	mu      sync.Mutex
	updates []transport.LocationUpdate
	failing map[string]error
}

func (f *fakeLocationPusher) PushCustomerLocation(_ context.Context, u transport.LocationUpdate) (transport.Response, error) {
	f.mu.Lock()
	f.updates = append(f.updates, u)
	f.mu.Unlock()
	if err := f.failing[u.CustomerID]; err != nil {
		return transport.Response{}, err
	}
	return transport.Response{Status: "success"}, nil
}

// fakeMaster serves scripted master-data lists.
type fakeMaster struct {
	items       []model.Item
	customers   []model.Customer
	salespeople []model.SalesPerson
	err         error
}

func (f *fakeMaster) PullItems(context.Context) ([]model.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeMaster) PullCustomers(context.Context) ([]model.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customers, nil
}

func (f *fakeMaster) PullSalesPersons(context.Context) ([]model.SalesPerson, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.salespeople, nil
}

// fakeMirror records wholesale replaces.
type fakeMirror struct {
	mu          sync.Mutex
	items       []model.Item
	customers   []model.Customer
	salespeople []model.SalesPerson
}

func (f *fakeMirror) ReplaceItems(_ context.Context, rows []model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = rows
	return nil
}

func (f *fakeMirror) ReplaceCustomers(_ context.Context, rows []model.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers = rows
	return nil
}

func (f *fakeMirror) ReplaceSalesPersons(_ context.Context, rows []model.SalesPerson) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.salespeople = rows
	return nil
}
