package pricing

import "math"

// Shop pricing constants.
const (
	defaultImposition = 16

	vpSpoilagePerColor  = 70
	gtoSpoilagePerColor = 30

	sheetsPerReam    = 1000.0
	paperMarginRate  = 1.2
	onDemandPasses   = 4
	includedPrints   = 1000.0
	marginalPrintPct = 0.8
	gtoVolumeFactor  = 4

	// maxCount bounds sheet and form counts; every integer up to it is exact
	// in a float64.
	maxCount = 1 << 53
)

// ImpositionSize returns how many finished pages one press sheet yields.
// Unrecognized sizes fall back to 16.
func ImpositionSize(size Size) int {
	switch size {
	case SizeA3:
		return 8
	case SizeA4, SizeB4:
		return 16
	case SizeA5, SizeB5:
		return 32
	case SizeA6:
		return 64
	default:
		return defaultImposition
	}
}

// PageDiv is the number of forms needed to print all pages, never less than one.
func PageDiv(pages int, size Size) int {
	forms := ceilDiv(float64(pages), float64(ImpositionSize(size)))
	if forms < 1 {
		return 1
	}
	return forms
}

// baseSheets is ceil(quantity*pages/imposition).
func baseSheets(s JobSpec) int {
	return ceilDiv(float64(s.Quantity)*float64(s.Pages), float64(ImpositionSize(s.Size)))
}

// impressions is the unrounded quantity*pages/imposition used by print pricing.
func impressions(s JobSpec) float64 {
	return float64(s.Quantity) * float64(s.Pages) / float64(ImpositionSize(s.Size))
}

// NeededPaper returns the raw sheet count for the job, including spoilage on
// offset presses. GTO spoilage is not multiplied by the form count.
func NeededPaper(s JobSpec) int {
	base := float64(baseSheets(s))
	inks := float64(s.Colors) * float64(s.sideFactor())
	switch s.Machine {
	case MachineVP:
		return clampCount(base + inks*vpSpoilagePerColor*float64(PageDiv(s.Pages, s.Size)))
	case MachineGTO:
		return clampCount(base + inks*gtoSpoilagePerColor)
	default:
		return clampCount(base)
	}
}

// PaperCost bills sheets in half-ream steps with the paper margin applied.
func PaperCost(neededPaper int, thickness, unitPrice float64) float64 {
	reams := ceilToHalf(float64(neededPaper) / sheetsPerReam)
	return reams * Num(thickness) * Num(unitPrice) * paperMarginRate
}

// PlateCost is zero for on-demand presses, which use no plates.
func PlateCost(s JobSpec) float64 {
	if s.Machine == MachineOnDemand {
		return 0
	}
	forms := ceilDiv(float64(s.Pages), float64(ImpositionSize(s.Size)))
	return float64(s.Colors) * float64(s.sideFactor()) * Num(s.PlateUnitCost) * float64(forms)
}

// PrintCost prices press time. VP and GTO include the first 1000 impressions
// in the base rate and bill the rest at the marginal rate; GTO scales volume
// by four both before and after the threshold.
func PrintCost(s JobSpec) float64 {
	unit := Num(s.PrintUnitCost)
	pageDiv := float64(PageDiv(s.Pages, s.Size))

	switch s.Machine {
	case MachineOnDemand:
		return unit * float64(baseSheets(s)) * onDemandPasses
	case MachineVP:
		base := float64(s.Colors) * float64(s.sideFactor()) * unit
		leftover := math.Max(0, impressions(s)-includedPrints) * marginalPrintPct * pageDiv
		return base + leftover
	case MachineGTO:
		base := float64(s.Colors) * float64(s.sideFactor()) * unit
		leftover := math.Max(0, impressions(s)*gtoVolumeFactor-includedPrints) * gtoVolumeFactor * marginalPrintPct * pageDiv
		return base + leftover
	default:
		return 0
	}
}

// DesignType selects how design work is billed.
type DesignType string

const (
	DesignInhouse    DesignType = "inhouse"
	DesignOutsourced DesignType = "outsourced"
)

// Design holds the design billing inputs of a line item.
type Design struct {
	Type            DesignType `json:"design_type"`
	OutsourceCost   float64    `json:"design_outsource_cost"`
	ProfitRate      float64    `json:"design_profit_rate"`
	InhouseUnitCost float64    `json:"design_inhouse_unit_cost"`
}

// DesignCost bills outsourced design at cost times profit rate and in-house
// design per page.
func DesignCost(d Design, pages int) float64 {
	if d.Type == DesignOutsourced {
		return Num(d.OutsourceCost) * Num(d.ProfitRate)
	}
	return Num(d.InhouseUnitCost) * float64(pages)
}

func ceilDiv(num, den float64) int {
	if den == 0 {
		return 0
	}
	return clampCount(math.Ceil(num / den))
}

// clampCount converts a whole-number float to int, saturating at ±maxCount.
func clampCount(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxCount:
		return maxCount
	case v < -maxCount:
		return -maxCount
	}
	return int(v)
}

func ceilToHalf(v float64) float64 {
	return math.Ceil(v*2) / 2
}
