package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Simplici0/printdesk/internal/calendar"
	"github.com/Simplici0/printdesk/internal/pricing"
	"github.com/Simplici0/printdesk/internal/store"
)

type slipResponse struct {
	Estimate store.Estimate   `json:"estimate"`
	Slip     pricing.Slip     `json:"slip"`
	Schedule []calendar.Entry `json:"schedule"`
}

type slipData struct {
	estimate store.Estimate
	details  []store.Detail
	schedule []calendar.Entry
}

// loadSlipData fetches the estimate, its lines and its schedule concurrently.
func (s *server) loadSlipData(ctx context.Context, estimateID string) (slipData, error) {
	var data slipData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.estimate, err = s.store.GetEstimate(ctx, estimateID)
		return err
	})
	g.Go(func() error {
		var err error
		data.details, err = s.store.ListDetails(ctx, estimateID)
		return err
	})
	g.Go(func() error {
		var err error
		data.schedule, err = s.store.ListSchedule(ctx, store.ScheduleFilter{EstimateID: estimateID})
		return err
	})

	if err := g.Wait(); err != nil {
		return slipData{}, err
	}
	return data, nil
}

func (d slipData) lines() []pricing.Line {
	lines := make([]pricing.Line, len(d.details))
	for i, detail := range d.details {
		lines[i] = detail.Line
	}
	return lines
}

func (s *server) handleSlip(w http.ResponseWriter, r *http.Request) {
	estimateID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req slipRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	data, err := s.loadSlipData(r.Context(), estimateID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, slipResponse{
		Estimate: data.estimate,
		Slip:     pricing.BuildSlip(data.lines(), req.Overrides()),
		Schedule: data.schedule,
	})
}

func (s *server) handleSlipText(w http.ResponseWriter, r *http.Request) {
	estimateID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, err := s.loadSlipData(r.Context(), estimateID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	text, err := renderSlipText(data.estimate, pricing.BuildSlip(data.lines(), pricing.Overrides{}), data.schedule)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

var slipTemplate = template.Must(template.New("slip").Funcs(template.FuncMap{
	"yen":  yen,
	"join": func(items []string) string { return strings.Join(items, "、") },
}).Parse(`売上伝票
取引先: {{.Estimate.ClientName}}
品名: {{.Estimate.Title}}
サイズ: {{.Slip.Header.Size}} / 部数: {{.Slip.Header.Quantity}} / 頁: {{.Slip.Header.Pages}} / 色: {{.Slip.Header.Colors}}
─────────
デザイン費: {{yen .Slip.Summary.Design}}
用紙代（一般）: {{yen .Slip.Summary.Paper.General}}
用紙代（表紙）: {{yen .Slip.Summary.Paper.Cover}}
用紙代（本文）: {{yen .Slip.Summary.Paper.Body}}
製版代（一般・表紙）: {{yen .Slip.Summary.Plate.GeneralCover}}
製版代（本文）: {{yen .Slip.Summary.Plate.Body}}
印刷代（一般・表紙）: {{yen .Slip.Summary.Print.GeneralCover}}
印刷代（本文）: {{yen .Slip.Summary.Print.Body}}
製本代（一般・表紙）: {{yen .Slip.Summary.Binding.GeneralCover}}
製本代（本文）: {{yen .Slip.Summary.Binding.Body}}
送料（一般・表紙）: {{yen .Slip.Summary.Shipping.GeneralCover}}
送料（本文）: {{yen .Slip.Summary.Shipping.Body}}
─────────
合計金額: {{yen .Slip.Summary.Total}}
単価: {{yen .Slip.Summary.UnitPrice}}
消費税: {{yen .Slip.Summary.Tax}}
─────────
工程表
{{- if .Slip.Flags.VP}}
VP 製版: {{join .Slip.Plates.VP}}
VP 印刷: {{join .Slip.Prints.VP}}
{{- end}}
{{- if .Slip.Flags.GTO}}
GTO 製版: {{join .Slip.Plates.GTO}}
GTO 印刷: {{join .Slip.Prints.GTO}}
{{- end}}
{{- if .Slip.Flags.OnDemand}}
オンデマンド 印刷: {{join .Slip.Prints.OnDemand}}
{{- end}}
{{- range .Schedule}}
{{.Date}} {{if .Done}}☑{{else}}☐{{end}} {{.Task}}
{{- end}}
`))

func renderSlipText(estimate store.Estimate, slip pricing.Slip, schedule []calendar.Entry) (string, error) {
	var buf bytes.Buffer
	err := slipTemplate.Execute(&buf, struct {
		Estimate store.Estimate
		Slip     pricing.Slip
		Schedule []calendar.Entry
	}{estimate, slip, schedule})
	if err != nil {
		return "", fmt.Errorf("render slip text: %w", err)
	}
	return buf.String(), nil
}

var jaPrinter = message.NewPrinter(language.Japanese)

// yen formats an amount with thousands separators, e.g. 70800 -> "70,800円".
func yen(v float64) string {
	return jaPrinter.Sprintf("%.0f円", v)
}
