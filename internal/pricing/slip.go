package pricing

import (
	"fmt"
	"strconv"
)

// ColorSlash renders the ink count per side, e.g. "4/4" or "1/0".
func ColorSlash(s JobSpec) string {
	if s.DoubleSided {
		return fmt.Sprintf("%d/%d", s.Colors, s.Colors)
	}
	return fmt.Sprintf("%d/0", s.Colors)
}

// PlateString describes the plates a job needs, e.g. "A1×8×2" for a VP job
// with eight plates per form over two forms.
func PlateString(s JobSpec) string {
	format := "A3"
	if s.Machine == MachineVP {
		format = "A1"
	}
	out := format + "×" + strconv.Itoa(s.Colors*s.sideFactor())
	if div := PageDiv(s.Pages, s.Size); div > 1 {
		out += "×" + strconv.Itoa(div)
	}
	return out
}

// PrintString describes the press run: "<sheets>×<colors>" for a single form,
// "<copies>×<colors>×<forms>" otherwise.
func PrintString(s JobSpec) string {
	div := PageDiv(s.Pages, s.Size)
	if div == 1 {
		return fmt.Sprintf("%d×%s", baseSheets(s), ColorSlash(s))
	}
	return fmt.Sprintf("%d×%s×%d", s.Quantity, ColorSlash(s), div)
}

// PaperSpec is the paper line printed per bucket on a slip.
type PaperSpec struct {
	Type      string  `json:"type"`
	Thickness float64 `json:"thickness"`
	Needed    int     `json:"needed"`
}

// Header is the job description block of a slip, taken from the first line.
type Header struct {
	Size          Size       `json:"size"`
	Quantity      int        `json:"quantity"`
	Pages         int        `json:"pages"`
	Colors        int        `json:"colors"`
	DetailType    DetailType `json:"detail_type"`
	DoubleSided   bool       `json:"is_double_sided"`
	BindingMethod string     `json:"binding_method"`
}

// Flags mark which workflows and presses appear among the lines.
type Flags struct {
	DesignInhouse   bool `json:"design_inhouse"`
	DesignOutsource bool `json:"design_outsource"`
	PrintInhouse    bool `json:"print_inhouse"`
	PrintOutsource  bool `json:"print_outsource"`
	VP              bool `json:"vp"`
	GTO             bool `json:"gto"`
	OnDemand        bool `json:"on_demand"`
}

// MachineStrings groups display strings per press.
type MachineStrings struct {
	VP       []string `json:"vp"`
	GTO      []string `json:"gto"`
	OnDemand []string `json:"on_demand,omitempty"`
}

// Slip is everything the slip documents print for one estimate.
type Slip struct {
	Header  Header               `json:"header"`
	Papers  map[string]PaperSpec `json:"papers"`
	Summary Summary              `json:"summary"`
	Flags   Flags                `json:"flags"`
	Plates  MachineStrings       `json:"plates"`
	Prints  MachineStrings       `json:"prints"`
}

// BuildSlip assembles a slip from priced lines. The summary quantity override
// also replaces the header quantity.
func BuildSlip(lines []Line, ov Overrides) Slip {
	slip := Slip{
		Papers:  paperSpecs(lines),
		Summary: Summarize(lines, ov),
		Plates:  MachineStrings{VP: []string{}, GTO: []string{}},
		Prints:  MachineStrings{VP: []string{}, GTO: []string{}, OnDemand: []string{}},
	}

	if len(lines) > 0 {
		first := lines[0].Item
		slip.Header = Header{
			Size:          first.Size,
			Quantity:      first.Quantity,
			Pages:         first.Pages,
			Colors:        first.Colors,
			DetailType:    first.DetailType,
			DoubleSided:   first.DoubleSided,
			BindingMethod: first.BindingMethod,
		}
	}
	slip.Header.Quantity = slip.Summary.Quantity

	for _, l := range lines {
		it := l.Item
		switch it.Design.Type {
		case DesignOutsourced:
			slip.Flags.DesignOutsource = true
		case DesignInhouse:
			slip.Flags.DesignInhouse = true
		}
		switch it.Print.Type {
		case PrintOutsourced:
			slip.Flags.PrintOutsource = true
		case PrintInhouse:
			slip.Flags.PrintInhouse = true
		}

		switch it.Machine {
		case MachineVP:
			slip.Flags.VP = true
			slip.Plates.VP = append(slip.Plates.VP, PlateString(it.JobSpec))
			slip.Prints.VP = append(slip.Prints.VP, PrintString(it.JobSpec))
		case MachineGTO:
			slip.Flags.GTO = true
			slip.Plates.GTO = append(slip.Plates.GTO, PlateString(it.JobSpec))
			slip.Prints.GTO = append(slip.Prints.GTO, PrintString(it.JobSpec))
		case MachineOnDemand:
			slip.Flags.OnDemand = true
			slip.Prints.OnDemand = append(slip.Prints.OnDemand, PrintString(it.JobSpec))
		}
	}

	return slip
}

// paperSpecs takes the first line of each bucket.
func paperSpecs(lines []Line) map[string]PaperSpec {
	out := make(map[string]PaperSpec, 3)
	names := map[bucket]string{
		bucketGeneral: "general",
		bucketCover:   "cover",
		bucketBody:    "body",
	}
	for _, l := range lines {
		name, ok := names[bucketOf(l.Item.DetailType)]
		if !ok {
			continue
		}
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = PaperSpec{
			Type:      l.Item.PaperType,
			Thickness: l.Item.PaperThickness,
			Needed:    l.Cost.NeededPaper,
		}
	}
	return out
}
