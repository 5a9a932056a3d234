package main

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/printdesk/internal/db"
	"github.com/Simplici0/printdesk/internal/migrations"
	"github.com/Simplici0/printdesk/internal/pricing"
	"github.com/Simplici0/printdesk/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.Up(database, "../../migrations"))

	return newRouter(&server{store: store.New(database)}, 5*time.Second)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorKind(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorResponse](t, rr).Error.Kind
}

// createEstimate makes a client and one estimate under it.
func createEstimate(t *testing.T, h http.Handler) (clientID, estimateID string) {
	t.Helper()

	rr := do(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "山田印刷"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	client := decode[store.Client](t, rr)

	rr = do(t, h, http.MethodPost, "/api/clients/"+client.ID+"/estimates", map[string]string{"title": "会社案内"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	estimate := decode[store.Estimate](t, rr)

	return client.ID, estimate.ID
}

func brochureLine() map[string]any {
	return map[string]any{
		"detail_type":              "表紙",
		"size":                     "A4",
		"quantity":                 1000,
		"pages":                    4,
		"colors":                   4,
		"is_double_sided":          true,
		"binding_method":           "中綴じ",
		"design_type":              "inhouse",
		"design_inhouse_unit_cost": 500,
		"print_type":               "inhouse",
		"machine":                  "VP",
		"paper_type":               "コート",
		"paper_thickness":          57.5,
		"paper_unit_price":         200,
		"plate_unit_cost":          3000,
		"print_unit_cost":          3000,
		"binding_cost":             5000,
		"shipping_cost":            2000,
	}
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestClients_CRUD(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "  山田印刷  "})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[store.Client](t, rr)
	assert.Equal(t, "山田印刷", created.Name)

	rr = do(t, h, http.MethodGet, "/api/clients?q=山田", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]store.Client](t, rr), 1)

	rr = do(t, h, http.MethodGet, "/api/clients?q=nobody", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())

	rr = do(t, h, http.MethodPut, "/api/clients/"+created.ID, map[string]string{"name": "山田印刷所"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "山田印刷所", decode[store.Client](t, rr).Name)

	rr = do(t, h, http.MethodDelete, "/api/clients/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/clients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not_found", errorKind(t, rr))
}

func TestClients_RejectsBadInput(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"blank name", map[string]string{"name": "   "}},
		{"unknown field", `{"name":"a","extra":1}`},
		{"malformed", `{"name":`},
		{"trailing data", `{"name":"a"} {}`},
		{"empty body", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/clients", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "invalid", errorKind(t, rr))
		})
	}
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/clients/not-a-uuid/estimates", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEstimates_MissingClient(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/clients/6f1c1f8e-8a43-4b0b-9a43-2f6a7c1d2e3f/estimates", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEstimates_ListAndDelete(t *testing.T) {
	h := newTestRouter(t)
	clientID, estimateID := createEstimate(t, h)

	rr := do(t, h, http.MethodGet, "/api/clients/"+clientID+"/estimates", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]store.Estimate](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, "山田印刷", list[0].ClientName)

	rr = do(t, h, http.MethodDelete, "/api/estimates/"+estimateID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/estimates/"+estimateID+"/details", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCalc(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/calc", brochureLine())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[calcResponse](t, rr)
	assert.Equal(t, 810, got.Cost.NeededPaper)
	assert.InDelta(t, 13800, got.Cost.PaperCost, 1e-9)
	assert.InDelta(t, 24000, got.Cost.PlateCost, 1e-9)
	assert.InDelta(t, 24000, got.Cost.PrintCost, 1e-9)
	assert.InDelta(t, 70800, got.Cost.TotalEstimated, 1e-9)
	assert.Equal(t, "A1×8", got.Plate)
	assert.Equal(t, "250×4/4", got.Print)
}

func TestCalc_Validation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name  string
		patch map[string]any
	}{
		{"unknown machine", map[string]any{"machine": "Riso"}},
		{"missing machine", map[string]any{"machine": ""}},
		{"negative quantity", map[string]any{"quantity": -1}},
		{"negative cost", map[string]any{"paper_unit_price": -5}},
		{"unknown design type", map[string]any{"design_type": "freelance"}},
		{"unknown detail type", map[string]any{"detail_type": "insert"}},
		{"missing size", map[string]any{"size": ""}},
		{"huge print rate", map[string]any{"print_unit_cost": 1e308}},
		{"huge plate rate", map[string]any{"plate_unit_cost": 1e20}},
		{"huge quantity", map[string]any{"quantity": int64(1) << 40}},
		{"too many pages", map[string]any{"pages": 100000}},
		{"five colors", map[string]any{"colors": 5}},
		{"huge profit rate", map[string]any{"design_profit_rate": 1e9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := brochureLine()
			for k, v := range tt.patch {
				body[k] = v
			}
			rr := do(t, h, http.MethodPost, "/api/calc", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestCalc_LargestAcceptedLineIsFinite(t *testing.T) {
	h := newTestRouter(t)

	body := brochureLine()
	body["quantity"] = 10000000
	body["pages"] = 10000
	for _, k := range []string{"paper_thickness", "paper_unit_price", "plate_unit_cost", "print_unit_cost", "binding_cost", "shipping_cost"} {
		body[k] = 100000000
	}

	rr := do(t, h, http.MethodPost, "/api/calc", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[calcResponse](t, rr)
	assert.Positive(t, got.Cost.NeededPaper)
	assert.Positive(t, got.Cost.TotalEstimated)
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, map[string]float64{"total": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal", errorKind(t, rr))
}

func TestCalc_JapaneseLabels(t *testing.T) {
	h := newTestRouter(t)

	body := brochureLine()
	body["machine"] = "オンデマンド"
	body["detail_type"] = "表紙＋本文"
	body["quantity"] = 500
	body["pages"] = 8
	body["print_unit_cost"] = 10

	rr := do(t, h, http.MethodPost, "/api/calc", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[calcResponse](t, rr)
	assert.Equal(t, pricing.MachineOnDemand, got.Item.Machine)
	assert.Equal(t, pricing.DetailCoverAndBody, got.Item.DetailType)
	assert.Equal(t, 250, got.Cost.NeededPaper)
	assert.Zero(t, got.Cost.PlateCost)
	assert.InDelta(t, 10000, got.Cost.PrintCost, 1e-9)
}

func TestDetails_CreateListDelete(t *testing.T) {
	h := newTestRouter(t)
	_, estimateID := createEstimate(t, h)

	rr := do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/details", brochureLine())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[store.Detail](t, rr)
	assert.InDelta(t, 70800, created.Cost.TotalEstimated, 1e-9)

	rr = do(t, h, http.MethodGet, "/api/estimates/"+estimateID+"/details", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	details := decode[[]store.Detail](t, rr)
	require.Len(t, details, 1)
	assert.Equal(t, created.ID, details[0].ID)
	assert.Equal(t, "コート", details[0].Item.PaperType)

	rr = do(t, h, http.MethodDelete, "/api/details/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, h, http.MethodDelete, "/api/details/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSlip_WithOverrides(t *testing.T) {
	h := newTestRouter(t)
	_, estimateID := createEstimate(t, h)

	rr := do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/details", brochureLine())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/slip", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	computed := decode[slipResponse](t, rr)
	assert.InDelta(t, 70800, computed.Slip.Summary.Total, 1e-9)
	assert.InDelta(t, 71, computed.Slip.Summary.UnitPrice, 1e-9)
	assert.InDelta(t, 7080, computed.Slip.Summary.Tax, 1e-9)
	assert.Equal(t, []string{"A1×8"}, computed.Slip.Plates.VP)
	assert.True(t, computed.Slip.Flags.VP)
	assert.Equal(t, "会社案内", computed.Estimate.Title)

	rr = do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/slip", map[string]any{
		"design":   0,
		"quantity": 500,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	overridden := decode[slipResponse](t, rr)
	assert.InDelta(t, 68800, overridden.Slip.Summary.Total, 1e-9)
	assert.Equal(t, 500, overridden.Slip.Header.Quantity)
	assert.InDelta(t, 138, overridden.Slip.Summary.UnitPrice, 1e-9)

	rr = do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/slip", map[string]any{"design": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSlip_MissingEstimate(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/estimates/6f1c1f8e-8a43-4b0b-9a43-2f6a7c1d2e3f/slip", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSlipText(t *testing.T) {
	h := newTestRouter(t)
	_, estimateID := createEstimate(t, h)

	rr := do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/details", brochureLine())
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/schedule", map[string]string{"date": "2024-03-05", "task": "入稿"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/estimates/"+estimateID+"/slip/text", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")

	body := rr.Body.String()
	for _, want := range []string{
		"売上伝票",
		"取引先: 山田印刷",
		"品名: 会社案内",
		"合計金額: 70,800円",
		"VP 製版: A1×8",
		"VP 印刷: 250×4/4",
		"2024-03-05 ☐ 入稿",
	} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "GTO")
}

func TestSchedule_MonthView(t *testing.T) {
	h := newTestRouter(t)
	_, estimateID := createEstimate(t, h)

	for _, e := range []map[string]string{
		{"date": "2024-02-01", "task": "入稿"},
		{"date": "2024-02-01", "task": "印刷"},
		{"date": "2024-01-28", "task": "打合せ"},
		{"date": "2024-04-01", "task": "納品"},
	} {
		rr := do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/schedule", e)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr := do(t, h, http.MethodGet, "/api/schedule?year=2024&month=2", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	month := decode[scheduleMonthResponse](t, rr)
	require.Len(t, month.Days, 42)
	assert.Equal(t, 1, month.Days[0].Count, "leading day from January")
	assert.Equal(t, 2, month.Days[4].Count)
	assert.Len(t, month.Entries, 3)
	assert.Equal(t, [2]int{2024, 1}, month.Prev)
	assert.Equal(t, [2]int{2024, 3}, month.Next)
}

func TestSchedule_ToggleAndDelete(t *testing.T) {
	h := newTestRouter(t)
	_, estimateID := createEstimate(t, h)

	rr := do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/schedule", map[string]string{"date": "2024-03-05", "task": "入稿"})
	require.Equal(t, http.StatusCreated, rr.Code)
	id := decode[map[string]any](t, rr)["id"].(string)

	rr = do(t, h, http.MethodPost, "/api/schedule/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["done"])

	rr = do(t, h, http.MethodDelete, "/api/schedule/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/schedule/"+id+"/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSchedule_BadInput(t *testing.T) {
	h := newTestRouter(t)
	_, estimateID := createEstimate(t, h)

	rr := do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/schedule", map[string]string{"date": "2024-02-30", "task": "入稿"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/schedule", map[string]string{"date": "2024-03-05", "task": "入稿"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/estimates/"+estimateID+"/schedule", map[string]string{"date": "2024-03-05", "task": "入稿"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "conflict", errorKind(t, rr))

	rr = do(t, h, http.MethodGet, "/api/schedule?year=2024&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/schedule?estimate_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestYen(t *testing.T) {
	assert.Equal(t, "70,800円", yen(70800))
	assert.Equal(t, "0円", yen(0))
	assert.Equal(t, "1,234,567円", yen(1234567))
}
