package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Simplici0/printdesk/internal/apperr"
	"github.com/Simplici0/printdesk/internal/pricing"
)

// Detail is a priced line item as stored against an estimate. The cost
// snapshot is computed once on insert and read back as-is.
type Detail struct {
	ID         string    `json:"id"`
	EstimateID string    `json:"estimate_id"`
	CreatedAt  time.Time `json:"created_at"`
	pricing.Line
}

const detailColumns = `
	id, estimate_id, created_at,
	detail_type, size, quantity, pages, colors, is_double_sided, binding_method,
	design_type, design_outsource_cost, design_profit_rate, design_inhouse_unit_cost,
	print_type, print_outsource_cost, print_profit_rate,
	machine, paper_type, paper_thickness, paper_unit_price, plate_unit_cost, print_unit_cost,
	binding_cost, shipping_cost,
	needed_paper, paper_cost, plate_cost, actual_print_cost,
	design_inhouse_calculated_cost, total_design_cost, total_print_cost, total_estimated
`

// ListDetails returns an estimate's line items in insertion order.
func (s *Store) ListDetails(ctx context.Context, estimateID string) ([]Detail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+detailColumns+`
		FROM estimate_details
		WHERE estimate_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("query estimate details: %w", err)
	}
	defer rows.Close()

	details := make([]Detail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimate details: %w", err)
	}

	return details, nil
}

// CreateDetail prices item and stores it with its cost snapshot.
func (s *Store) CreateDetail(ctx context.Context, estimateID string, item pricing.LineItem) (Detail, error) {
	if _, err := s.GetEstimate(ctx, estimateID); err != nil {
		return Detail{}, err
	}
	return s.insertDetail(ctx, estimateID, item)
}

func (s *Store) insertDetail(ctx context.Context, estimateID string, item pricing.LineItem) (Detail, error) {
	cost := pricing.EstimateLine(item)
	if !cost.Finite() {
		return Detail{}, fmt.Errorf("line costs are out of range: %w", apperr.ErrInvalid)
	}
	created := s.timestamp()
	d := Detail{ID: newID(), EstimateID: estimateID, Line: pricing.Line{Item: item, Cost: cost}}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO estimate_details (`+detailColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.ID, estimateID, created,
		string(item.DetailType), string(item.Size), item.Quantity, item.Pages, item.Colors, item.DoubleSided, item.BindingMethod,
		string(item.Design.Type), item.Design.OutsourceCost, item.Design.ProfitRate, item.Design.InhouseUnitCost,
		string(item.Print.Type), item.Print.OutsourceCost, item.Print.ProfitRate,
		string(item.Machine), item.PaperType, item.PaperThickness, item.PaperUnitPrice, item.PlateUnitCost, item.PrintUnitCost,
		item.BindingCost, item.ShippingCost,
		cost.NeededPaper, cost.PaperCost, cost.PlateCost, cost.PrintCost,
		cost.DesignInhouseComputed, cost.TotalDesign, cost.TotalPrint, cost.TotalEstimated,
	); err != nil {
		return Detail{}, fmt.Errorf("insert estimate detail: %w", err)
	}

	var err error
	if d.CreatedAt, err = parseTime(created); err != nil {
		return Detail{}, err
	}
	return d, nil
}

// DeleteDetail removes one line item.
func (s *Store) DeleteDetail(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM estimate_details WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete estimate detail: %w", err)
	}
	return expectAffected(result, "estimate detail", id)
}

func scanDetail(row scanner) (Detail, error) {
	var (
		d                                                Detail
		created                                          string
		it                                               = &d.Item
		c                                                = &d.Cost
		size, machine, detailType, designType, printType string
	)
	if err := row.Scan(
		&d.ID, &d.EstimateID, &created,
		&detailType, &size, &it.Quantity, &it.Pages, &it.Colors, &it.DoubleSided, &it.BindingMethod,
		&designType, &it.Design.OutsourceCost, &it.Design.ProfitRate, &it.Design.InhouseUnitCost,
		&printType, &it.Print.OutsourceCost, &it.Print.ProfitRate,
		&machine, &it.PaperType, &it.PaperThickness, &it.PaperUnitPrice, &it.PlateUnitCost, &it.PrintUnitCost,
		&it.BindingCost, &it.ShippingCost,
		&c.NeededPaper, &c.PaperCost, &c.PlateCost, &c.PrintCost,
		&c.DesignInhouseComputed, &c.TotalDesign, &c.TotalPrint, &c.TotalEstimated,
	); err != nil {
		return Detail{}, fmt.Errorf("scan estimate detail: %w", err)
	}

	it.DetailType = pricing.DetailType(detailType)
	it.Size = pricing.Size(size)
	it.Machine = pricing.Machine(machine)
	it.Design.Type = pricing.DesignType(designType)
	it.Print.Type = pricing.PrintType(printType)

	c.DesignCost = c.TotalDesign
	c.Total = c.TotalEstimated
	if it.Print.Type != pricing.PrintOutsourced {
		c.InhouseTotal = c.TotalPrint
	}

	var err error
	if d.CreatedAt, err = parseTime(created); err != nil {
		return Detail{}, err
	}
	return d, nil
}
