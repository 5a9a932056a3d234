package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateLine_Inhouse(t *testing.T) {
	item := LineItem{
		JobSpec:      sampleSpec(MachineVP),
		Design:       Design{Type: DesignInhouse, InhouseUnitCost: 500},
		Print:        Print{Type: PrintInhouse},
		BindingCost:  5000,
		ShippingCost: 2000,
	}

	got := EstimateLine(item)

	assert.Equal(t, 810, got.NeededPaper)
	assert.InDelta(t, 13800, got.PaperCost, 1e-9)
	assert.InDelta(t, 24000, got.PlateCost, 1e-9)
	assert.InDelta(t, 24000, got.PrintCost, 1e-9)
	assert.InDelta(t, 68800, got.InhouseTotal, 1e-9)
	assert.InDelta(t, 2000, got.TotalDesign, 1e-9)
	assert.InDelta(t, 2000, got.DesignInhouseComputed, 1e-9)
	assert.InDelta(t, 68800, got.TotalPrint, 1e-9)
	assert.InDelta(t, 70800, got.TotalEstimated, 1e-9)
	assert.Equal(t, got.TotalEstimated, got.Total)
}

func TestEstimateLine_Finite(t *testing.T) {
	item := LineItem{JobSpec: sampleSpec(MachineVP), Print: Print{Type: PrintInhouse}}
	assert.True(t, EstimateLine(item).Finite())

	item.PrintUnitCost = 1e308
	item.PlateUnitCost = 1e308
	got := EstimateLine(item)
	assert.False(t, got.Finite())

	assert.False(t, LineCost{TotalEstimated: math.NaN()}.Finite())
}

func TestEstimateLine_OutsourcedPrint(t *testing.T) {
	item := LineItem{
		JobSpec:      sampleSpec(MachineVP),
		Design:       Design{Type: DesignOutsourced, OutsourceCost: 10000, ProfitRate: 1.1},
		Print:        Print{Type: PrintOutsourced, OutsourceCost: 50000, ProfitRate: 1.2},
		BindingCost:  5000,
		ShippingCost: 2000,
	}

	got := EstimateLine(item)

	assert.Zero(t, got.NeededPaper)
	assert.Zero(t, got.PaperCost)
	assert.Zero(t, got.PlateCost)
	assert.Zero(t, got.InhouseTotal)
	assert.Zero(t, got.DesignInhouseComputed)
	assert.InDelta(t, 60000, got.PrintCost, 1e-6)
	assert.InDelta(t, 60000, got.TotalPrint, 1e-6)
	assert.InDelta(t, 11000, got.TotalDesign, 1e-6)
	assert.InDelta(t, 71000, got.TotalEstimated, 1e-6)
}

func summaryLines() []Line {
	line := func(dt DetailType, qty int, paper, plate, print, binding, shipping, design float64) Line {
		return Line{
			Item: LineItem{
				JobSpec:      JobSpec{DetailType: dt, Quantity: qty},
				BindingCost:  binding,
				ShippingCost: shipping,
			},
			Cost: LineCost{
				CostResult:  CostResult{PaperCost: paper, PlateCost: plate, PrintCost: print},
				TotalDesign: design,
			},
		}
	}

	return []Line{
		line(DetailCover, 1000, 100, 200, 300, 10, 5, 1000),
		line(DetailBody, 1000, 400, 500, 600, 20, 6, 2000),
		line(DetailCoverAndBody, 1000, 50, 60, 70, 1, 2, 3),
		line(DetailType("insert"), 1000, 9999, 9999, 9999, 9999, 9999, 7),
	}
}

func TestSummarize_Buckets(t *testing.T) {
	s := Summarize(summaryLines(), Overrides{})

	assert.InDelta(t, 3010, s.Design, 1e-9)
	assert.Equal(t, PaperRows{General: 50, Cover: 100, Body: 400}, s.Paper)
	assert.Equal(t, SplitRow{GeneralCover: 260, Body: 500}, s.Plate)
	assert.Equal(t, SplitRow{GeneralCover: 370, Body: 600}, s.Print)
	assert.Equal(t, SplitRow{GeneralCover: 11, Body: 20}, s.Binding)
	assert.Equal(t, SplitRow{GeneralCover: 7, Body: 6}, s.Shipping)

	assert.InDelta(t, 5334, s.Total, 1e-9)
	assert.Equal(t, 1000, s.Quantity)
	assert.InDelta(t, 5, s.UnitPrice, 1e-9)
	assert.InDelta(t, 533, s.Tax, 1e-9)
}

func TestSummarize_TotalIsSumOfRows(t *testing.T) {
	s := Summarize(summaryLines(), Overrides{})

	sum := s.Design + s.Paper.General + s.Paper.Cover + s.Paper.Body +
		s.Plate.GeneralCover + s.Plate.Body +
		s.Print.GeneralCover + s.Print.Body +
		s.Binding.GeneralCover + s.Binding.Body +
		s.Shipping.GeneralCover + s.Shipping.Body
	assert.Equal(t, sum, s.Total)
}

func TestSummarize_Overrides(t *testing.T) {
	body := 1000.0
	qty := 7

	s := Summarize(summaryLines(), Overrides{
		Print:    SplitOverride{Body: &body},
		Quantity: &qty,
	})

	assert.InDelta(t, 1000, s.Print.Body, 1e-9)
	assert.InDelta(t, 370, s.Print.GeneralCover, 1e-9, "unset override keeps computed value")
	assert.InDelta(t, 5734, s.Total, 1e-9)
	assert.Equal(t, 7, s.Quantity)
	assert.InDelta(t, 819, s.UnitPrice, 1e-9)
	assert.InDelta(t, 573, s.Tax, 1e-9)
}

func TestSummarize_ZeroOverrideIsNotUnset(t *testing.T) {
	zero := 0.0
	s := Summarize(summaryLines(), Overrides{Design: &zero})

	assert.Zero(t, s.Design)
	assert.InDelta(t, 5334-3010, s.Total, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, Overrides{})

	assert.Zero(t, s.Total)
	assert.Zero(t, s.Quantity)
	assert.Zero(t, s.UnitPrice)
	assert.Zero(t, s.Tax)
}

func TestUnitPriceAndTax(t *testing.T) {
	assert.InDelta(t, 3, UnitPrice(5, 2), 1e-9)
	assert.InDelta(t, 4, UnitPrice(7, 2), 1e-9)
	assert.InDelta(t, 0, UnitPrice(100, 0), 1e-9)
	assert.InDelta(t, 0, UnitPrice(100, -3), 1e-9)
	assert.InDelta(t, 99, Tax(999.99), 1e-9)
	assert.InDelta(t, 0, Tax(9.99), 1e-9)
}

func TestDisplayStrings(t *testing.T) {
	vp := sampleSpec(MachineVP)
	assert.Equal(t, "4/4", ColorSlash(vp))
	assert.Equal(t, "A1×8", PlateString(vp))
	assert.Equal(t, "250×4/4", PrintString(vp))

	vp.Pages = 40
	assert.Equal(t, "A1×8×3", PlateString(vp))
	assert.Equal(t, "1000×4/4×3", PrintString(vp))

	gto := JobSpec{Size: SizeA4, Quantity: 300, Pages: 2, Colors: 1, Machine: MachineGTO}
	assert.Equal(t, "1/0", ColorSlash(gto))
	assert.Equal(t, "A3×1", PlateString(gto))
	assert.Equal(t, "38×1/0", PrintString(gto))
}

func TestBuildSlip(t *testing.T) {
	cover := LineItem{
		JobSpec:       sampleSpec(MachineVP),
		Design:        Design{Type: DesignInhouse, InhouseUnitCost: 100},
		Print:         Print{Type: PrintInhouse},
		PaperType:     "コート",
		BindingMethod: "中綴じ",
	}
	cover.DetailType = DetailCover

	body := LineItem{
		JobSpec: JobSpec{
			Size: SizeA4, Quantity: 1000, Pages: 32, Colors: 1, DoubleSided: true,
			Machine: MachineGTO, PaperThickness: 45, PaperUnitPrice: 180,
			PlateUnitCost: 2000, PrintUnitCost: 2000, DetailType: DetailBody,
		},
		Design:    Design{Type: DesignOutsourced, OutsourceCost: 5000, ProfitRate: 1.1},
		Print:     Print{Type: PrintOutsourced, OutsourceCost: 40000, ProfitRate: 1.1},
		PaperType: "上質",
	}

	lines := []Line{
		{Item: cover, Cost: EstimateLine(cover)},
		{Item: body, Cost: EstimateLine(body)},
	}

	slip := BuildSlip(lines, Overrides{})

	assert.Equal(t, SizeA4, slip.Header.Size)
	assert.Equal(t, 1000, slip.Header.Quantity)
	assert.Equal(t, "中綴じ", slip.Header.BindingMethod)
	assert.Equal(t, Flags{
		DesignInhouse: true, DesignOutsource: true,
		PrintInhouse: true, PrintOutsource: true,
		VP: true, GTO: true,
	}, slip.Flags)
	assert.Equal(t, []string{"A1×8"}, slip.Plates.VP)
	assert.Equal(t, []string{"A3×2×2"}, slip.Plates.GTO)
	assert.Equal(t, []string{"250×4/4"}, slip.Prints.VP)
	assert.Equal(t, []string{"1000×1/1×2"}, slip.Prints.GTO)
	assert.Empty(t, slip.Prints.OnDemand)

	require.Contains(t, slip.Papers, "cover")
	require.Contains(t, slip.Papers, "body")
	assert.NotContains(t, slip.Papers, "general")
	assert.Equal(t, PaperSpec{Type: "コート", Thickness: 57.5, Needed: 810}, slip.Papers["cover"])
	assert.Equal(t, PaperSpec{Type: "上質", Thickness: 45, Needed: 0}, slip.Papers["body"])

	assert.Equal(t, slip.Summary, Summarize(lines, Overrides{}))
}

func TestBuildSlip_QuantityOverrideUpdatesHeader(t *testing.T) {
	qty := 250
	slip := BuildSlip(summaryLines(), Overrides{Quantity: &qty})

	assert.Equal(t, 250, slip.Header.Quantity)
	assert.Equal(t, 250, slip.Summary.Quantity)
}
