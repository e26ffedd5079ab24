// Package pricing computes line totals for order items using cascading
// trade discounts.
//
// Discounts are sequential, not summed: each rate applies to the amount
// remaining after the previous one, in fixed order d1 -> d2 -> d3 -> d4.
// With d1=10 and d2=5 the effective rate is 14.5%, not 15%.
package pricing

import "github.com/druryyl/btrade/internal/model"

// LineInput carries everything needed to price one order line.
type LineInput struct {
	UnitPrice  float64 // per small unit
	Conversion int     // small units per big unit
	QtyBig     int
	QtySmall   int
	QtyBonus   int     // free goods; contributes nothing to the subtotal
	Discounts  [4]float64
}

// Subtotal is the undiscounted line amount.
func Subtotal(in LineInput) float64 {
	return in.UnitPrice*float64(in.Conversion)*float64(in.QtyBig) +
		in.UnitPrice*float64(in.QtySmall)
}

// LineTotal applies the discount cascade to the subtotal.
//
// Inputs are assumed valid: quantities non-negative, rates within [0,100].
// Clamping belongs at the input boundary (ClampRate), not here.
func LineTotal(in LineInput) float64 {
	remaining := Subtotal(in)
	for _, d := range in.Discounts {
		remaining -= remaining * d / 100
	}
	return remaining
}

// ClampRate forces a discount percentage into [0,100]. Callers apply this ahead
// of LineTotal when accepting user or file input.
func ClampRate(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}

// ItemInput builds a LineInput from an order item's stored fields.
func ItemInput(it model.OrderItem) LineInput {
	return LineInput{
		UnitPrice:  it.UnitPrice,
		Conversion: it.Conversion,
		QtyBig:     it.QtyBig,
		QtySmall:   it.QtySmall,
		QtyBonus:   it.QtyBonus,
		Discounts:  [4]float64{it.Disc1, it.Disc2, it.Disc3, it.Disc4},
	}
}

// OrderTotal recomputes an order's total from scratch as the sum of its
// items' line totals. Always a full recompute, never an incremental delta.
func OrderTotal(items []model.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal
	}
	return total
}
