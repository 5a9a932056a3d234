package pricing

import "math"

// PrintType selects whether a part is printed in-house or bought in.
type PrintType string

const (
	PrintInhouse    PrintType = "inhouse"
	PrintOutsourced PrintType = "outsourced"
)

// Print holds the print billing inputs used when printing is outsourced.
type Print struct {
	Type          PrintType `json:"print_type"`
	OutsourceCost float64   `json:"print_outsource_cost"`
	ProfitRate    float64   `json:"print_profit_rate"`
}

// LineItem is one estimate detail row: a job spec plus design, print and
// pass-through costs.
type LineItem struct {
	JobSpec
	Design        Design  `json:"design"`
	Print         Print   `json:"print"`
	BindingMethod string  `json:"binding_method"`
	PaperType     string  `json:"paper_type"`
	BindingCost   float64 `json:"binding_cost"`
	ShippingCost  float64 `json:"shipping_cost"`
}

// LineCost is the snapshot stored with an estimate detail.
type LineCost struct {
	CostResult
	InhouseTotal          float64 `json:"inhouse_total"`
	DesignInhouseComputed float64 `json:"design_inhouse_calculated_cost"`
	TotalDesign           float64 `json:"total_design_cost"`
	TotalPrint            float64 `json:"total_print_cost"`
	TotalEstimated        float64 `json:"total_estimated"`
}

// Calculate prices a job spec printed in-house with no design work.
func Calculate(s JobSpec) CostResult {
	needed := NeededPaper(s)
	res := CostResult{
		NeededPaper: needed,
		PaperCost:   PaperCost(needed, s.PaperThickness, s.PaperUnitPrice),
		PlateCost:   PlateCost(s),
		PrintCost:   PrintCost(s),
	}
	res.Total = res.PaperCost + res.PlateCost + res.PrintCost
	return res
}

// EstimateLine prices a full line item. Outsourced printing replaces the
// paper/plate/press breakdown (and the binding and shipping pass-through) with
// the marked-up outsource cost.
func EstimateLine(item LineItem) LineCost {
	design := DesignCost(item.Design, item.Pages)

	var lc LineCost
	if item.Print.Type == PrintOutsourced {
		lc.PrintCost = Num(item.Print.OutsourceCost) * Num(item.Print.ProfitRate)
		lc.TotalPrint = lc.PrintCost
	} else {
		lc.CostResult = Calculate(item.JobSpec)
		lc.InhouseTotal = lc.PaperCost + lc.PlateCost + lc.PrintCost + Num(item.BindingCost) + Num(item.ShippingCost)
		lc.TotalPrint = lc.InhouseTotal
	}

	lc.DesignCost = design
	if item.Design.Type != DesignOutsourced {
		lc.DesignInhouseComputed = design
	}
	lc.TotalDesign = design
	lc.TotalEstimated = lc.TotalDesign + lc.TotalPrint
	lc.Total = lc.TotalEstimated
	return lc
}

// Finite reports whether every amount in the snapshot is a finite number.
// Extreme rates can overflow to ±Inf, which cannot be stored or encoded.
func (lc LineCost) Finite() bool {
	for _, v := range []float64{
		lc.PaperCost, lc.PlateCost, lc.PrintCost, lc.DesignCost, lc.Total,
		lc.InhouseTotal, lc.DesignInhouseComputed, lc.TotalDesign, lc.TotalPrint, lc.TotalEstimated,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
