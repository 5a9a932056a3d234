package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printdesk/internal/pricing"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Price one print job line",
	Long:  "Prices a single line item with the in-house pricing rules and prints the cost breakdown.",
	RunE:  runCalc,
}

var (
	calcSize          string
	calcQuantity      int
	calcPages         int
	calcColors        int
	calcDoubleSided   bool
	calcMachine       string
	calcDetailType    string
	calcThickness     float64
	calcPaperPrice    float64
	calcPlateUnit     float64
	calcPrintUnit     float64
	calcDesignType    string
	calcDesignUnit    float64
	calcDesignOutside float64
	calcDesignRate    float64
	calcPrintType     string
	calcPrintOutside  float64
	calcPrintRate     float64
	calcBindingCost   float64
	calcShippingCost  float64
	calcJSON          bool
)

func init() {
	f := calcCmd.Flags()
	f.StringVar(&calcSize, "size", "A4", "Finished size (A3, A4, A5, A6, B4, B5)")
	f.IntVar(&calcQuantity, "quantity", 0, "Copies")
	f.IntVar(&calcPages, "pages", 0, "Pages per copy")
	f.IntVar(&calcColors, "colors", 4, "Inks per side")
	f.BoolVar(&calcDoubleSided, "double-sided", true, "Print both sides")
	f.StringVar(&calcMachine, "machine", "VP", "Press (VP, GTO, ondemand)")
	f.StringVar(&calcDetailType, "detail-type", "", "Line role (general, cover, body, cover+body)")
	f.Float64Var(&calcThickness, "paper-thickness", 0, "Paper thickness in kg per ream")
	f.Float64Var(&calcPaperPrice, "paper-unit-price", 0, "Paper price per kg")
	f.Float64Var(&calcPlateUnit, "plate-unit-cost", 0, "Cost per plate")
	f.Float64Var(&calcPrintUnit, "print-unit-cost", 0, "Press unit cost")
	f.StringVar(&calcDesignType, "design-type", string(pricing.DesignInhouse), "Design billing (inhouse, outsourced)")
	f.Float64Var(&calcDesignUnit, "design-unit-cost", 0, "In-house design cost per page")
	f.Float64Var(&calcDesignOutside, "design-outsource-cost", 0, "Outsourced design cost")
	f.Float64Var(&calcDesignRate, "design-profit-rate", 1, "Markup on outsourced design")
	f.StringVar(&calcPrintType, "print-type", string(pricing.PrintInhouse), "Print billing (inhouse, outsourced)")
	f.Float64Var(&calcPrintOutside, "print-outsource-cost", 0, "Outsourced print cost")
	f.Float64Var(&calcPrintRate, "print-profit-rate", 1, "Markup on outsourced print")
	f.Float64Var(&calcBindingCost, "binding-cost", 0, "Binding cost")
	f.Float64Var(&calcShippingCost, "shipping-cost", 0, "Shipping cost")
	f.BoolVar(&calcJSON, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(calcCmd)
}

func calcLineItem() (pricing.LineItem, error) {
	machine := pricing.ParseMachine(calcMachine)
	if !machine.Known() {
		return pricing.LineItem{}, fmt.Errorf("unknown machine %q", calcMachine)
	}
	detailType := pricing.ParseDetailType(calcDetailType)
	if !detailType.Known() {
		return pricing.LineItem{}, fmt.Errorf("unknown detail type %q", calcDetailType)
	}
	designType := pricing.DesignType(calcDesignType)
	if designType != pricing.DesignInhouse && designType != pricing.DesignOutsourced {
		return pricing.LineItem{}, fmt.Errorf("unknown design type %q", calcDesignType)
	}
	printType := pricing.PrintType(calcPrintType)
	if printType != pricing.PrintInhouse && printType != pricing.PrintOutsourced {
		return pricing.LineItem{}, fmt.Errorf("unknown print type %q", calcPrintType)
	}
	if calcQuantity < 0 || calcPages < 0 || calcColors < 0 {
		return pricing.LineItem{}, fmt.Errorf("quantity, pages and colors must not be negative")
	}

	return pricing.LineItem{
		JobSpec: pricing.JobSpec{
			Size:           pricing.ParseSize(calcSize),
			Quantity:       calcQuantity,
			Pages:          calcPages,
			Colors:         calcColors,
			DoubleSided:    calcDoubleSided,
			Machine:        machine,
			PaperThickness: calcThickness,
			PaperUnitPrice: calcPaperPrice,
			PlateUnitCost:  calcPlateUnit,
			PrintUnitCost:  calcPrintUnit,
			DetailType:     detailType,
		},
		Design: pricing.Design{
			Type:            designType,
			OutsourceCost:   calcDesignOutside,
			ProfitRate:      calcDesignRate,
			InhouseUnitCost: calcDesignUnit,
		},
		Print: pricing.Print{
			Type:          printType,
			OutsourceCost: calcPrintOutside,
			ProfitRate:    calcPrintRate,
		},
		BindingCost:  calcBindingCost,
		ShippingCost: calcShippingCost,
	}, nil
}

func runCalc(cmd *cobra.Command, _ []string) error {
	item, err := calcLineItem()
	if err != nil {
		return err
	}
	cost := pricing.EstimateLine(item)
	if !cost.Finite() {
		return fmt.Errorf("line costs are out of range")
	}

	out := cmd.OutOrStdout()
	if calcJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Item pricing.LineItem `json:"item"`
			Cost pricing.LineCost `json:"cost"`
		}{item, cost})
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "imposition\t%d\n", pricing.ImpositionSize(item.Size))
	fmt.Fprintf(tw, "needed paper\t%d\n", cost.NeededPaper)
	fmt.Fprintf(tw, "plates\t%s\n", pricing.PlateString(item.JobSpec))
	fmt.Fprintf(tw, "press\t%s\n", pricing.PrintString(item.JobSpec))
	fmt.Fprintf(tw, "paper cost\t%.2f\n", cost.PaperCost)
	fmt.Fprintf(tw, "plate cost\t%.2f\n", cost.PlateCost)
	fmt.Fprintf(tw, "print cost\t%.2f\n", cost.PrintCost)
	fmt.Fprintf(tw, "design cost\t%.2f\n", cost.TotalDesign)
	fmt.Fprintf(tw, "total\t%.2f\n", cost.TotalEstimated)
	return tw.Flush()
}
