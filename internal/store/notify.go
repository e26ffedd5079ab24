package store

import "sync"

// Kind names an entity family for change notification.
type Kind string

const (
	KindOrder       Kind = "order"
	KindCheckIn     Kind = "checkin"
	KindCustomer    Kind = "customer"
	KindSalesPerson Kind = "salesperson"
	KindItem        Kind = "item"
)

// notifier fans a change signal out to subscribers after every committed
// write. Signals coalesce: a subscriber that has not drained its channel
// gets one pending signal, not a backlog. Subscribers re-query on signal,
// which turns the store's queries into live collections without the store
// buffering row data per subscriber.
type notifier struct {
	mu     sync.Mutex
	subs   map[Kind][]chan struct{}
	closed bool
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[Kind][]chan struct{})}
}

// Subscribe returns a channel that receives a signal after each committed
// write touching the given kind. The channel is closed by Store.Close.
func (s *Store) Subscribe(kind Kind) <-chan struct{} {
	n := s.notifier
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan struct{}, 1)
	if n.closed {
		close(ch)
		return ch
	}
	n.subs[kind] = append(n.subs[kind], ch)
	return ch
}

// notify signals all subscribers of a kind. Non-blocking: a full channel
// already carries a pending signal.
func (n *notifier) notify(kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	for _, ch := range n.subs[kind] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for _, chans := range n.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	n.subs = nil
}
