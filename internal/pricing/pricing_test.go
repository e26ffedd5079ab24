package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/druryyl/btrade/internal/model"
)

func TestLineTotal_CascadeNotFlatSum(t *testing.T) {
	in := LineInput{
		UnitPrice:  10000,
		Conversion: 12,
		QtyBig:     1,
		QtySmall:   5,
		Discounts:  [4]float64{10, 5, 0, 0},
	}

	// 10000*12*1 + 10000*5.
	assert.Equal(t, 170000.0, Subtotal(in))

	// 170000 -> 153000 after 10% -> 145350 after 5%.
	got := LineTotal(in)
	assert.Equal(t, 145350.0, got)

	// The flat-sum rendering (15% off) gives 144500 and is wrong.
	assert.NotEqual(t, 144500.0, got)
}

func TestLineTotal_CascadeStepValues(t *testing.T) {
	// 5000*24*1 + 5000*1 = 125000 -> 112500 after 10% -> 106875 after 5%.
	in := LineInput{
		UnitPrice:  5000,
		Conversion: 24,
		QtyBig:     1,
		QtySmall:   1,
		Discounts:  [4]float64{10, 5, 0, 0},
	}

	assert.Equal(t, 125000.0, Subtotal(in))
	assert.Equal(t, 106875.0, LineTotal(in))
}

func TestLineTotal_ZeroDiscountsIsSubtotal(t *testing.T) {
	in := LineInput{UnitPrice: 3500, Conversion: 24, QtyBig: 2, QtySmall: 7}
	assert.Equal(t, Subtotal(in), LineTotal(in))
}

func TestLineTotal_BonusQuantityNeverPriced(t *testing.T) {
	priced := LineInput{UnitPrice: 1000, Conversion: 10, QtyBig: 1}
	withBonus := priced
	withBonus.QtyBonus = 500

	assert.Equal(t, LineTotal(priced), LineTotal(withBonus))
}

func TestLineTotal_FullDiscountZeroesLine(t *testing.T) {
	in := LineInput{
		UnitPrice: 9999, QtySmall: 3,
		Discounts: [4]float64{0, 100, 0, 0},
	}
	assert.Equal(t, 0.0, LineTotal(in))
}

func TestLineTotal_CascadeOrderIsFixed(t *testing.T) {
	// Multiplication of remainders is commutative, so reordering rates gives
	// the same result; the point of the fixed order is attribution, and the
	// cascade itself must match the per-step reference values.
	in := LineInput{UnitPrice: 100, QtySmall: 100, Discounts: [4]float64{25, 10, 4, 1}}

	want := 10000.0
	for _, d := range []float64{25, 10, 4, 1} {
		want -= want * d / 100
	}
	assert.InDelta(t, want, LineTotal(in), 1e-9)
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0.0, ClampRate(-3))
	assert.Equal(t, 0.0, ClampRate(0))
	assert.Equal(t, 42.5, ClampRate(42.5))
	assert.Equal(t, 100.0, ClampRate(100))
	assert.Equal(t, 100.0, ClampRate(250))
}

func TestOrderTotal_SumsLineTotals(t *testing.T) {
	items := []model.OrderItem{
		{LineTotal: 106875},
		{LineTotal: 24000},
		{LineTotal: 0},
	}
	assert.Equal(t, 130875.0, OrderTotal(items))
	assert.Equal(t, 0.0, OrderTotal(nil))
}

func TestItemInput_MapsStoredFields(t *testing.T) {
	it := model.OrderItem{
		UnitPrice: 10000, Conversion: 12,
		QtyBig: 1, QtySmall: 5, QtyBonus: 2,
		Disc1: 10, Disc2: 5,
	}
	assert.Equal(t, 145350.0, LineTotal(ItemInput(it)))
}
