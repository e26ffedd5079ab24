package model

import "time"

// Order is a sales order header authored on the device.
//
// Customer and salesperson fields are snapshots captured at selection time,
// not live joins: master data may be replaced wholesale by a pull while a
// draft is open, and the draft must keep the values the user actually saw.
type Order struct {
	ID          string     `json:"id"`           // global identifier (ident package)
	LocalCode   string     `json:"local_code"`   // human-friendly sequence code
	OrderDate   string     `json:"order_date"`   // yyyy-MM-dd
	TotalAmount float64    `json:"total_amount"` // always equals the sum of item line totals
	FakturCode  string     `json:"faktur_code"`  // assigned by the remote system on accept
	Note        string     `json:"note"`
	UserName    string     `json:"user_name"`
	Status      SyncStatus `json:"status"`

	CustomerID      string  `json:"customer_id"`
	CustomerCode    string  `json:"customer_code"`
	CustomerName    string  `json:"customer_name"`
	CustomerAddress string  `json:"customer_address"`
	CustomerLat     float64 `json:"customer_lat"`
	CustomerLon     float64 `json:"customer_lon"`

	SalesPersonID   string `json:"sales_person_id"`
	SalesPersonCode string `json:"sales_person_code"`
	SalesPersonName string `json:"sales_person_name"`
}

// OrderItem is one priced line of an Order, keyed by (OrderID, NoUrut).
//
// NoUrut is a 1-based line sequence assigned at insert time from the current
// item count; it is never reused after a deletion within the same order
// session, so gaps are normal.
type OrderItem struct {
	OrderID string `json:"order_id"`
	NoUrut  int    `json:"no_urut"`

	ItemCode     string `json:"item_code"`
	ItemName     string `json:"item_name"`
	ItemCategory string `json:"item_category"`

	UnitBig    string `json:"unit_big"`   // e.g. carton
	UnitSmall  string `json:"unit_small"` // e.g. piece
	Conversion int    `json:"conversion"` // small units per big unit

	QtyBig   int `json:"qty_big"`
	QtySmall int `json:"qty_small"`
	QtyBonus int `json:"qty_bonus"` // free goods, never priced

	UnitPrice float64 `json:"unit_price"` // per small unit
	Disc1     float64 `json:"disc1"`      // percentages, applied in cascade d1..d4
	Disc2     float64 `json:"disc2"`
	Disc3     float64 `json:"disc3"`
	Disc4     float64 `json:"disc4"`

	LineTotal float64 `json:"line_total"`
}

// CheckIn is a timestamped GPS visit record against a customer.
type CheckIn struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"` // yyyy-MM-dd
	Time     string     `json:"time"` // HH:mm:ss
	UserName string     `json:"user_name"`
	Lat      float64    `json:"lat"`
	Lon      float64    `json:"lon"`
	Accuracy float64    `json:"accuracy"` // meters
	Status   SyncStatus `json:"status"`

	CustomerID   string `json:"customer_id"`
	CustomerCode string `json:"customer_code"`
	CustomerName string `json:"customer_name"`
}

// Customer is a master-data mirror row pulled from the remote catalog.
//
// Lat/Lon/Accuracy may be edited locally (re-pinning the shop location in the
// field); LocationDirty flags rows whose coordinates have local edits not yet
// pushed upstream.
type Customer struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Accuracy      float64 `json:"accuracy"`
	LocationDirty bool    `json:"location_dirty"`
}

// SalesPerson is a master-data mirror row.
type SalesPerson struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Item is a catalog ("barang") master-data mirror row.
type Item struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	UnitBig    string  `json:"unit_big"`
	UnitSmall  string  `json:"unit_small"`
	Conversion int     `json:"conversion"`
	UnitPrice  float64 `json:"unit_price"` // per small unit
}

// DateString formats t as the store's canonical order/check-in date.
func DateString(t time.Time) string { return t.Format("2006-01-02") }

// TimeString formats t as the store's canonical check-in time of day.
func TimeString(t time.Time) string { return t.Format("15:04:05") }
