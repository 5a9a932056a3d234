package pricing

import "math"

const taxRate = 0.1

// Line is a priced estimate detail as stored.
type Line struct {
	Item LineItem `json:"item"`
	Cost LineCost `json:"cost"`
}

// PaperRows are reported once per bucket.
type PaperRows struct {
	General float64 `json:"general"`
	Cover   float64 `json:"cover"`
	Body    float64 `json:"body"`
}

// SplitRow is a slip row printed on two lines: general and cover together,
// body on its own.
type SplitRow struct {
	GeneralCover float64 `json:"general_cover"`
	Body         float64 `json:"body"`
}

func (r SplitRow) sum() float64 { return r.GeneralCover + r.Body }

// Summary is the money side of a slip.
type Summary struct {
	Design    float64   `json:"design"`
	Paper     PaperRows `json:"paper"`
	Plate     SplitRow  `json:"plate"`
	Print     SplitRow  `json:"print"`
	Binding   SplitRow  `json:"binding"`
	Shipping  SplitRow  `json:"shipping"`
	Total     float64   `json:"total"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Tax       float64   `json:"tax"`
}

// SplitOverride shadows the two lines of a SplitRow.
type SplitOverride struct {
	GeneralCover *float64 `json:"general_cover,omitempty"`
	Body         *float64 `json:"body,omitempty"`
}

// PaperOverride shadows the three paper rows.
type PaperOverride struct {
	General *float64 `json:"general,omitempty"`
	Cover   *float64 `json:"cover,omitempty"`
	Body    *float64 `json:"body,omitempty"`
}

// Overrides holds values typed over the computed slip. A nil field keeps the
// computed value.
type Overrides struct {
	Design   *float64      `json:"design,omitempty"`
	Paper    PaperOverride `json:"paper"`
	Plate    SplitOverride `json:"plate"`
	Print    SplitOverride `json:"print"`
	Binding  SplitOverride `json:"binding"`
	Shipping SplitOverride `json:"shipping"`
	Quantity *int          `json:"quantity,omitempty"`
}

type bucket int

const (
	bucketNone bucket = iota
	bucketGeneral
	bucketCover
	bucketBody
)

func bucketOf(d DetailType) bucket {
	switch d {
	case DetailGeneral, DetailCoverAndBody:
		return bucketGeneral
	case DetailCover:
		return bucketCover
	case DetailBody:
		return bucketBody
	default:
		return bucketNone
	}
}

type bucketSums struct {
	paper, plate, print, binding, shipping float64
}

// Summarize aggregates priced lines into slip rows. Design is summed across
// every line; the other costs only count for lines in a known bucket.
func Summarize(lines []Line, ov Overrides) Summary {
	var design float64
	sums := map[bucket]*bucketSums{
		bucketGeneral: {},
		bucketCover:   {},
		bucketBody:    {},
	}

	for _, l := range lines {
		design += Num(l.Cost.TotalDesign)

		b, ok := sums[bucketOf(l.Item.DetailType)]
		if !ok {
			continue
		}
		b.paper += Num(l.Cost.PaperCost)
		b.plate += Num(l.Cost.PlateCost)
		b.print += Num(l.Cost.PrintCost)
		b.binding += Num(l.Item.BindingCost)
		b.shipping += Num(l.Item.ShippingCost)
	}

	g, c, bd := sums[bucketGeneral], sums[bucketCover], sums[bucketBody]
	s := Summary{
		Design: pick(design, ov.Design),
		Paper: PaperRows{
			General: pick(g.paper, ov.Paper.General),
			Cover:   pick(c.paper, ov.Paper.Cover),
			Body:    pick(bd.paper, ov.Paper.Body),
		},
		Plate:    split(g.plate+c.plate, bd.plate, ov.Plate),
		Print:    split(g.print+c.print, bd.print, ov.Print),
		Binding:  split(g.binding+c.binding, bd.binding, ov.Binding),
		Shipping: split(g.shipping+c.shipping, bd.shipping, ov.Shipping),
	}

	s.Total = s.Design +
		s.Paper.General + s.Paper.Cover + s.Paper.Body +
		s.Plate.sum() + s.Print.sum() + s.Binding.sum() + s.Shipping.sum()

	s.Quantity = slipQuantity(lines, ov.Quantity)
	s.UnitPrice = UnitPrice(s.Total, s.Quantity)
	s.Tax = Tax(s.Total)
	return s
}

// UnitPrice is total/quantity rounded half up, or 0 without a quantity.
func UnitPrice(total float64, quantity int) float64 {
	if quantity <= 0 {
		return 0
	}
	return math.Floor(total/float64(quantity) + 0.5)
}

// Tax is the consumption tax on total, truncated to whole yen.
func Tax(total float64) float64 {
	return math.Floor(total * taxRate)
}

func slipQuantity(lines []Line, ov *int) int {
	if ov != nil {
		return *ov
	}
	if len(lines) == 0 {
		return 0
	}
	return lines[0].Item.Quantity
}

func split(generalCover, body float64, ov SplitOverride) SplitRow {
	return SplitRow{
		GeneralCover: pick(generalCover, ov.GeneralCover),
		Body:         pick(body, ov.Body),
	}
}

func pick(computed float64, ov *float64) float64 {
	if ov == nil {
		return computed
	}
	return Num(*ov)
}
