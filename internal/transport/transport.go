// Package transport defines the wire contract with the remote sales service
// and its HTTP implementation.
//
// The sync engine consumes this package through narrow per-entity interfaces
// it declares itself; nothing here knows about the local store.
//
// Two failure layers exist and both matter to callers:
//   - transport failures: timeouts, connectivity loss, non-2xx HTTP
//     (surfaced as errors, non-2xx as *StatusError)
//   - application rejections: 2xx HTTP whose body carries a non-"success"
//     status (surfaced as a Response with Accepted() == false, not an error)
package transport

import "fmt"

// BodyStatusSuccess is the body-level status the service uses for accepted
// requests. Anything else on a 2xx response is an application rejection.
const BodyStatusSuccess = "success"

// Response is the service's push envelope.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    string `json:"data,omitempty"` // order pushes: server-assigned faktur code
}

// Accepted reports whether the body flags success.
func (r Response) Accepted() bool { return r.Status == BodyStatusSuccess }

// StatusError is a non-2xx HTTP reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.Code)
	}
	return fmt.Sprintf("http status %d: %s", e.Code, e.Body)
}

// WireOrder is the push payload for one order: full header plus the ordered
// line list. Field shapes mirror what the service expects, independent of
// local bookkeeping.
type WireOrder struct {
	OrderID         string          `json:"order_id"`
	LocalCode       string          `json:"local_code"`
	OrderDate       string          `json:"order_date"`
	TotalAmount     float64         `json:"total_amount"`
	Note            string          `json:"note"`
	UserName        string          `json:"user_name"`
	CustomerID      string          `json:"customer_id"`
	CustomerCode    string          `json:"customer_code"`
	CustomerName    string          `json:"customer_name"`
	SalesPersonID   string          `json:"sales_person_id"`
	SalesPersonCode string          `json:"sales_person_code"`
	Items           []WireOrderItem `json:"items"`
}

// WireOrderItem is one line of a pushed order.
type WireOrderItem struct {
	NoUrut     int     `json:"no_urut"`
	ItemCode   string  `json:"item_code"`
	ItemName   string  `json:"item_name"`
	UnitBig    string  `json:"unit_big"`
	UnitSmall  string  `json:"unit_small"`
	Conversion int     `json:"conversion"`
	QtyBig     int     `json:"qty_big"`
	QtySmall   int     `json:"qty_small"`
	QtyBonus   int     `json:"qty_bonus"`
	UnitPrice  float64 `json:"unit_price"`
	Disc1      float64 `json:"disc1"`
	Disc2      float64 `json:"disc2"`
	Disc3      float64 `json:"disc3"`
	Disc4      float64 `json:"disc4"`
	LineTotal  float64 `json:"line_total"`
}

// WireCheckIn is the push payload for one customer visit.
type WireCheckIn struct {
	CheckInID    string  `json:"checkin_id"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	UserName     string  `json:"user_name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Accuracy     float64 `json:"accuracy"`
	CustomerID   string  `json:"customer_id"`
	CustomerCode string  `json:"customer_code"`
}

// LocationUpdate pushes a locally re-pinned customer coordinate upstream.
type LocationUpdate struct {
	CustomerID string  `json:"customer_id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Accuracy   float64 `json:"accuracy"`
	ClientTime string  `json:"client_time"` // RFC 3339, device clock
	UserName   string  `json:"user_name"`
}
