package syncer

import (
	"time"

	"github.com/druryyl/btrade/internal/model"
	"github.com/druryyl/btrade/internal/transport"
)

// wireOrder re-derives the push payload from the stored header and lines.
// Local-only bookkeeping (sync status, the faktur code the server itself
// assigns) stays out of the wire shape.
func wireOrder(o model.Order, items []model.OrderItem) transport.WireOrder {
	w := transport.WireOrder{
		OrderID:         o.ID,
		LocalCode:       o.LocalCode,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
		Note:            o.Note,
		UserName:        o.UserName,
		CustomerID:      o.CustomerID,
		CustomerCode:    o.CustomerCode,
		CustomerName:    o.CustomerName,
		SalesPersonID:   o.SalesPersonID,
		SalesPersonCode: o.SalesPersonCode,
		Items:           make([]transport.WireOrderItem, 0, len(items)),
	}
	for _, it := range items {
		w.Items = append(w.Items, transport.WireOrderItem{
			NoUrut:     it.NoUrut,
			ItemCode:   it.ItemCode,
			ItemName:   it.ItemName,
			UnitBig:    it.UnitBig,
			UnitSmall:  it.UnitSmall,
			Conversion: it.Conversion,
			QtyBig:     it.QtyBig,
			QtySmall:   it.QtySmall,
			QtyBonus:   it.QtyBonus,
			UnitPrice:  it.UnitPrice,
			Disc1:      it.Disc1,
			Disc2:      it.Disc2,
			Disc3:      it.Disc3,
			Disc4:      it.Disc4,
			LineTotal:  it.LineTotal,
		})
	}
	return w
}

func wireCheckIn(c model.CheckIn) transport.WireCheckIn {
	return transport.WireCheckIn{
		CheckInID:    c.ID,
		Date:         c.Date,
		Time:         c.Time,
		UserName:     c.UserName,
		Lat:          c.Lat,
		Lon:          c.Lon,
		Accuracy:     c.Accuracy,
		CustomerID:   c.CustomerID,
		CustomerCode: c.CustomerCode,
	}
}

func locationUpdate(c model.Customer, userName string, at time.Time) transport.LocationUpdate {
	return transport.LocationUpdate{
		CustomerID: c.ID,
		Lat:        c.Lat,
		Lon:        c.Lon,
		Accuracy:   c.Accuracy,
		ClientTime: at.Format(time.RFC3339),
		UserName:   userName,
	}
}
