package pricing

import (
	"math"
	"strings"
)

// Size is the finished sheet size of a job. Unknown sizes are kept as-is and
// priced with the default imposition.
type Size string

const (
	SizeA3 Size = "A3"
	SizeA4 Size = "A4"
	SizeA5 Size = "A5"
	SizeA6 Size = "A6"
	SizeB4 Size = "B4"
	SizeB5 Size = "B5"
)

// ParseSize normalizes a size label. Anything that is not a known size is
// returned trimmed but otherwise untouched.
func ParseSize(raw string) Size {
	trimmed := strings.TrimSpace(raw)
	switch s := Size(strings.ToUpper(trimmed)); s {
	case SizeA3, SizeA4, SizeA5, SizeA6, SizeB4, SizeB5:
		return s
	}
	return Size(trimmed)
}

// Machine is the press class a job runs on.
type Machine string

const (
	MachineVP       Machine = "VP"
	MachineGTO      Machine = "GTO"
	MachineOnDemand Machine = "OnDemand"
)

// ParseMachine normalizes a machine label, accepting the katakana label used
// on the shop floor for on-demand presses.
func ParseMachine(raw string) Machine {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "vp":
		return MachineVP
	case "gto":
		return MachineGTO
	case "ondemand", "on-demand", "on_demand", "オンデマンド":
		return MachineOnDemand
	}
	return Machine(trimmed)
}

// Known reports whether m is one of the priced press classes.
func (m Machine) Known() bool {
	return m == MachineVP || m == MachineGTO || m == MachineOnDemand
}

// DetailType tags which part of an order a line item prices.
type DetailType string

const (
	DetailGeneral      DetailType = "general"
	DetailCover        DetailType = "cover"
	DetailBody         DetailType = "body"
	DetailCoverAndBody DetailType = "cover+body"
)

// ParseDetailType accepts the english tags and the labels printed on the slips.
// An empty value means "unspecified" and maps to general.
func ParseDetailType(raw string) DetailType {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "general", "指定無し":
		return DetailGeneral
	case "cover", "表紙":
		return DetailCover
	case "body", "本文":
		return DetailBody
	case "cover+body", "表紙＋本文", "表紙+本文":
		return DetailCoverAndBody
	}
	return DetailType(trimmed)
}

// Known reports whether d is one of the slip buckets.
func (d DetailType) Known() bool {
	switch d {
	case DetailGeneral, DetailCover, DetailBody, DetailCoverAndBody:
		return true
	}
	return false
}

// JobSpec is the physical description of one printed part plus the rates
// needed to price it.
type JobSpec struct {
	Size           Size       `json:"size"`
	Quantity       int        `json:"quantity"`
	Pages          int        `json:"pages"`
	Colors         int        `json:"colors"`
	DoubleSided    bool       `json:"is_double_sided"`
	Machine        Machine    `json:"machine"`
	PaperThickness float64    `json:"paper_thickness"`
	PaperUnitPrice float64    `json:"paper_unit_price"`
	PlateUnitCost  float64    `json:"plate_unit_cost"`
	PrintUnitCost  float64    `json:"print_unit_cost"`
	DetailType     DetailType `json:"detail_type"`
}

// CostResult is the priced outcome of a line item.
type CostResult struct {
	NeededPaper int     `json:"needed_paper"`
	PaperCost   float64 `json:"paper_cost"`
	PlateCost   float64 `json:"plate_cost"`
	PrintCost   float64 `json:"print_cost"`
	DesignCost  float64 `json:"design_cost"`
	Total       float64 `json:"total"`
}

// Num coerces a decimal input to a usable number: NaN and infinities become 0.
func Num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (s JobSpec) sideFactor() int {
	if s.DoubleSided {
		return 2
	}
	return 1
}
