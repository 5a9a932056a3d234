// Package seed loads the baseline data a fresh database needs.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Simplici0/printdesk/internal/apperr"
	"github.com/Simplici0/printdesk/internal/pricing"
	"github.com/Simplici0/printdesk/internal/store"
)

const (
	defaultClientName   = "店頭"
	sampleEstimateTitle = "サンプル見積（A4 会社案内）"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, st *store.Store) (Stats, error) {
	stats := Stats{}

	err := st.WithTx(ctx, func(tx *store.Store) error {
		client, err := ensureClient(ctx, tx, &stats)
		if err != nil {
			return err
		}
		estimate, err := ensureEstimate(ctx, tx, client, &stats)
		if err != nil {
			return err
		}
		return ensureSampleLine(ctx, tx, estimate, &stats)
	})
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func ensureClient(ctx context.Context, tx *store.Store, stats *Stats) (store.Client, error) {
	c, err := tx.FindClientByName(ctx, defaultClientName)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return store.Client{}, fmt.Errorf("check default client existence: %w", err)
	}

	c, err = tx.CreateClient(ctx, defaultClientName)
	if err != nil {
		return store.Client{}, fmt.Errorf("insert default client: %w", err)
	}
	stats.Inserts++
	return c, nil
}

func ensureEstimate(ctx context.Context, tx *store.Store, client store.Client, stats *Stats) (store.Estimate, error) {
	estimates, err := tx.ListEstimates(ctx, client.ID)
	if err != nil {
		return store.Estimate{}, fmt.Errorf("check sample estimate existence: %w", err)
	}
	for _, e := range estimates {
		if e.Title == sampleEstimateTitle {
			return e, nil
		}
	}

	e, err := tx.CreateEstimate(ctx, client.ID, sampleEstimateTitle)
	if err != nil {
		return store.Estimate{}, fmt.Errorf("insert sample estimate: %w", err)
	}
	stats.Inserts++
	return e, nil
}

func ensureSampleLine(ctx context.Context, tx *store.Store, estimate store.Estimate, stats *Stats) error {
	details, err := tx.ListDetails(ctx, estimate.ID)
	if err != nil {
		return fmt.Errorf("check sample line existence: %w", err)
	}
	if len(details) > 0 {
		return nil
	}

	if _, err := tx.CreateDetail(ctx, estimate.ID, SampleLine()); err != nil {
		return fmt.Errorf("insert sample line: %w", err)
	}
	stats.Inserts++
	return nil
}

// SampleLine is a four-page A4 brochure run on the VP press.
func SampleLine() pricing.LineItem {
	return pricing.LineItem{
		JobSpec: pricing.JobSpec{
			Size:           pricing.SizeA4,
			Quantity:       1000,
			Pages:          4,
			Colors:         4,
			DoubleSided:    true,
			Machine:        pricing.MachineVP,
			PaperThickness: 57.5,
			PaperUnitPrice: 200,
			PlateUnitCost:  3000,
			PrintUnitCost:  3000,
			DetailType:     pricing.DetailGeneral,
		},
		Design:        pricing.Design{Type: pricing.DesignInhouse, InhouseUnitCost: 500},
		Print:         pricing.Print{Type: pricing.PrintInhouse},
		BindingMethod: "中綴じ",
		PaperType:     "コート",
		BindingCost:   5000,
		ShippingCost:  2000,
	}
}
