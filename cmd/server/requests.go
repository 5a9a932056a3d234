package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Simplici0/printdesk/internal/apperr"
	"github.com/Simplici0/printdesk/internal/pricing"
)

var validate = validator.New()

// invalid wraps validation failures so they map to 400 responses.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s: %w", strings.Join(fields, "; "), apperr.ErrInvalid)
	}
	return fmt.Errorf("%v: %w", err, apperr.ErrInvalid)
}

// clientRequest is the body of client create and rename calls.
type clientRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (r *clientRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validate.Struct(r)
}

type estimateRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func (r *estimateRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validate.Struct(r)
}

// lineRequest is one estimate line as typed into the estimate form. Labels
// are accepted in either Japanese or their stored form.
type lineRequest struct {
	DetailType  string `json:"detail_type"`
	Size        string `json:"size" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=0,max=10000000"`
	Pages       int    `json:"pages" validate:"gte=0,max=10000"`
	Colors      int    `json:"colors" validate:"gte=0,lte=4"`
	DoubleSided bool   `json:"is_double_sided"`

	BindingMethod string `json:"binding_method" validate:"max=100"`

	DesignType            string  `json:"design_type" validate:"omitempty,oneof=inhouse outsourced"`
	DesignOutsourceCost   float64 `json:"design_outsource_cost" validate:"gte=0,max=100000000"`
	DesignProfitRate      float64 `json:"design_profit_rate" validate:"gte=0,max=100"`
	DesignInhouseUnitCost float64 `json:"design_inhouse_unit_cost" validate:"gte=0,max=100000000"`

	PrintType          string  `json:"print_type" validate:"omitempty,oneof=inhouse outsourced"`
	PrintOutsourceCost float64 `json:"print_outsource_cost" validate:"gte=0,max=100000000"`
	PrintProfitRate    float64 `json:"print_profit_rate" validate:"gte=0,max=100"`

	Machine        string  `json:"machine" validate:"required"`
	PaperType      string  `json:"paper_type" validate:"max=100"`
	PaperThickness float64 `json:"paper_thickness" validate:"gte=0,max=100000000"`
	PaperUnitPrice float64 `json:"paper_unit_price" validate:"gte=0,max=100000000"`
	PlateUnitCost  float64 `json:"plate_unit_cost" validate:"gte=0,max=100000000"`
	PrintUnitCost  float64 `json:"print_unit_cost" validate:"gte=0,max=100000000"`
	BindingCost    float64 `json:"binding_cost" validate:"gte=0,max=100000000"`
	ShippingCost   float64 `json:"shipping_cost" validate:"gte=0,max=100000000"`
}

func (r *lineRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if m := pricing.ParseMachine(r.Machine); !m.Known() {
		return fmt.Errorf("unknown machine %q", r.Machine)
	}
	if dt := pricing.ParseDetailType(r.DetailType); !dt.Known() {
		return fmt.Errorf("unknown detail type %q", r.DetailType)
	}
	return nil
}

// LineItem converts a validated request into the pricing input.
func (r *lineRequest) LineItem() pricing.LineItem {
	designType := pricing.DesignType(r.DesignType)
	if designType == "" {
		designType = pricing.DesignInhouse
	}
	printType := pricing.PrintType(r.PrintType)
	if printType == "" {
		printType = pricing.PrintInhouse
	}

	return pricing.LineItem{
		JobSpec: pricing.JobSpec{
			Size:           pricing.ParseSize(r.Size),
			Quantity:       r.Quantity,
			Pages:          r.Pages,
			Colors:         r.Colors,
			DoubleSided:    r.DoubleSided,
			Machine:        pricing.ParseMachine(r.Machine),
			PaperThickness: r.PaperThickness,
			PaperUnitPrice: r.PaperUnitPrice,
			PlateUnitCost:  r.PlateUnitCost,
			PrintUnitCost:  r.PrintUnitCost,
			DetailType:     pricing.ParseDetailType(r.DetailType),
		},
		Design: pricing.Design{
			Type:            designType,
			OutsourceCost:   r.DesignOutsourceCost,
			ProfitRate:      r.DesignProfitRate,
			InhouseUnitCost: r.DesignInhouseUnitCost,
		},
		Print: pricing.Print{
			Type:          printType,
			OutsourceCost: r.PrintOutsourceCost,
			ProfitRate:    r.PrintProfitRate,
		},
		BindingMethod: strings.TrimSpace(r.BindingMethod),
		PaperType:     strings.TrimSpace(r.PaperType),
		BindingCost:   r.BindingCost,
		ShippingCost:  r.ShippingCost,
	}
}

// splitOverride mirrors pricing.SplitOverride on the wire.
type splitOverride struct {
	GeneralCover *float64 `json:"general_cover" validate:"omitempty,gte=0,max=1000000000000"`
	Body         *float64 `json:"body" validate:"omitempty,gte=0,max=1000000000000"`
}

// slipRequest carries the values an operator typed over the computed slip.
// Omitted fields keep the computed value.
type slipRequest struct {
	Design *float64 `json:"design" validate:"omitempty,gte=0,max=1000000000000"`
	Paper  struct {
		General *float64 `json:"general" validate:"omitempty,gte=0,max=1000000000000"`
		Cover   *float64 `json:"cover" validate:"omitempty,gte=0,max=1000000000000"`
		Body    *float64 `json:"body" validate:"omitempty,gte=0,max=1000000000000"`
	} `json:"paper"`
	Plate    splitOverride `json:"plate"`
	Print    splitOverride `json:"print"`
	Binding  splitOverride `json:"binding"`
	Shipping splitOverride `json:"shipping"`
	Quantity *int          `json:"quantity" validate:"omitempty,gte=0,max=10000000"`
}

func (r *slipRequest) Validate() error {
	return validate.Struct(r)
}

func (r *slipRequest) Overrides() pricing.Overrides {
	split := func(s splitOverride) pricing.SplitOverride {
		return pricing.SplitOverride{GeneralCover: s.GeneralCover, Body: s.Body}
	}
	return pricing.Overrides{
		Design: r.Design,
		Paper: pricing.PaperOverride{
			General: r.Paper.General,
			Cover:   r.Paper.Cover,
			Body:    r.Paper.Body,
		},
		Plate:    split(r.Plate),
		Print:    split(r.Print),
		Binding:  split(r.Binding),
		Shipping: split(r.Shipping),
		Quantity: r.Quantity,
	}
}

type scheduleRequest struct {
	Date string `json:"date" validate:"required"`
	Task string `json:"task" validate:"required,max=200"`
}

func (r *scheduleRequest) Validate() error {
	r.Task = strings.TrimSpace(r.Task)
	return validate.Struct(r)
}
