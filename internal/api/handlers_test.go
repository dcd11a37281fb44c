// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/vinoteca/internal/config"
	"github.com/tomtom215/vinoteca/internal/enrich"
	"github.com/tomtom215/vinoteca/internal/gaps"
	"github.com/tomtom215/vinoteca/internal/inventory"
	"github.com/tomtom215/vinoteca/internal/logging"
	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/pairing"
	"github.com/tomtom215/vinoteca/internal/profile"
	"github.com/tomtom215/vinoteca/internal/recommend"
	"github.com/tomtom215/vinoteca/internal/scoring"
)

// fakeStore is an in-memory CellarStore for handler tests.
type fakeStore struct {
	wines   []*models.Wine
	nextID  int
	pingErr error
	listErr error
}

func (s *fakeStore) CreateWine(_ context.Context, wine *models.Wine) error {
	if wine.Name == "" || wine.OwnerID == "" || !wine.Type.Valid() {
		return inventory.ErrInvalidWine
	}
	if wine.ID == "" {
		s.nextID++
		wine.ID = fmt.Sprintf("wine-%d", s.nextID)
	}
	s.wines = append(s.wines, wine)
	return nil
}

func (s *fakeStore) GetWine(_ context.Context, ownerID, id string) (*models.Wine, error) {
	for _, w := range s.wines {
		if w.ID == id && w.OwnerID == ownerID {
			copied := *w
			return &copied, nil
		}
	}
	return nil, inventory.ErrWineNotFound
}

func (s *fakeStore) WinesByOwner(_ context.Context, ownerID string) ([]models.Wine, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Wine
	for _, w := range s.wines {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateWine(_ context.Context, wine *models.Wine) error {
	for i, w := range s.wines {
		if w.ID == wine.ID && w.OwnerID == wine.OwnerID {
			s.wines[i] = wine
			return nil
		}
	}
	return inventory.ErrWineNotFound
}

func (s *fakeStore) ConsumeBottle(_ context.Context, ownerID, id string) (int, error) {
	for _, w := range s.wines {
		if w.ID == id && w.OwnerID == ownerID {
			if w.Quantity == 0 {
				return 0, inventory.ErrNoBottles
			}
			w.Quantity--
			return w.Quantity, nil
		}
	}
	return 0, inventory.ErrWineNotFound
}

func (s *fakeStore) DeleteWine(_ context.Context, ownerID, id string) error {
	for i, w := range s.wines {
		if w.ID == id && w.OwnerID == ownerID {
			s.wines = append(s.wines[:i], s.wines[i+1:]...)
			return nil
		}
	}
	return inventory.ErrWineNotFound
}

func (s *fakeStore) Ping() error {
	return s.pingErr
}

// fakeEnricher returns a scripted enrichment result.
type fakeEnricher struct {
	result enrich.Result
	err    error
}

func (e *fakeEnricher) Enrich(_ context.Context, q models.WineQuery) (enrich.Result, error) {
	if q.IsEmpty() {
		return enrich.Result{}, enrich.ErrEmptyQuery
	}
	return e.result, e.err
}

// newTestServer builds a full router over real engine components and
// the given fakes.
func newTestServer(t *testing.T, store *fakeStore, enricher Enricher) *httptest.Server {
	t.Helper()

	logger := logging.NewTestLogger(io.Discard)
	scorer := scoring.NewScorer(logger)
	matcher := pairing.NewMatcher(scorer, logger)
	analyzer := gaps.NewAnalyzer(logger)
	calculator := profile.NewCalculator(logger)
	engine := recommend.NewEngine(store, scorer, matcher, analyzer, nil, logger)

	handler := NewHandler(store, engine, calculator, analyzer, enricher, nil, logger)
	router := NewRouter(handler, &config.APIConfig{
		DefaultPageSize:   20,
		MaxPageSize:       100,
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		CORSOrigins:       []string{"*"},
	})

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

// envelope mirrors the response wrapper for decoding in tests.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *APIError       `json:"error"`
}

func doJSON(t *testing.T, method, url string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func validAnswers() []profile.Answer {
	return []profile.Answer{
		{QuestionID: profile.QWineTypesTried, Value: []any{"red-full", "white-crisp"}},
		{QuestionID: profile.QDrinkingFrequency, Value: "weekly"},
		{QuestionID: profile.QFlavorIntensity, Value: "bold"},
		{QuestionID: profile.QBodyPreference, Value: "full"},
		{QuestionID: profile.QPriceRange, Value: map[string]any{"min": 15.0, "max": 30.0}},
	}
}

func stockedWine(id, ownerID string) *models.Wine {
	now := time.Now().UTC()
	return &models.Wine{
		ID:        id,
		OwnerID:   ownerID,
		Name:      "Ridge Monte Bello",
		Producer:  "Ridge",
		Type:      models.WineTypeRed,
		Region:    "Santa Cruz Mountains",
		Country:   "usa",
		Varietals: []string{"cabernet sauvignon"},
		Vintage:   2018,
		Quantity:  3,
		Window: &models.DrinkingWindow{
			Earliest:  now.AddDate(-2, 0, 0),
			PeakStart: now.AddDate(-1, 0, 0),
			PeakEnd:   now.AddDate(3, 0, 0),
			Latest:    now.AddDate(8, 0, 0),
		},
	}
}

func TestHealthEndpoints(t *testing.T) {
	store := &fakeStore{}
	server := newTestServer(t, store, nil)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/v1/health/ready", nil)
	if status != http.StatusOK || env.Status != "success" {
		t.Errorf("ready = %d/%s, want 200/success", status, env.Status)
	}

	store.pingErr = errors.New("connection refused")
	status, env = doJSON(t, http.MethodGet, server.URL+"/api/v1/health/ready", nil)
	if status != http.StatusServiceUnavailable {
		t.Errorf("ready with dead store = %d, want 503", status)
	}
	if env.Error == nil || env.Error.Code != "NOT_READY" {
		t.Errorf("error = %+v, want NOT_READY", env.Error)
	}

	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/health/live", nil)
	if status != http.StatusOK {
		t.Errorf("live = %d, want 200 even with a dead store", status)
	}
}

func TestProfileQuestions(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/v1/profile/questions", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var data struct {
		Questions []questionResponse `json:"questions"`
		Required  int                `json:"required"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if len(data.Questions) != len(profile.Questions) {
		t.Errorf("questions = %d, want %d", len(data.Questions), len(profile.Questions))
	}
	if data.Required != profile.RequiredCount() {
		t.Errorf("required = %d, want %d", data.Required, profile.RequiredCount())
	}
}

func TestProfileCalculate(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/profile/calculate", map[string]any{
		"user_id": "user-1",
		"answers": validAnswers(),
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d (%+v), want 200", status, env.Error)
	}

	var tasteProfile models.TasteProfile
	if err := json.Unmarshal(env.Data, &tasteProfile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if tasteProfile.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", tasteProfile.UserID)
	}
	if tasteProfile.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", tasteProfile.Confidence)
	}
}

func TestProfileCalculateRejectsBadAnswers(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/profile/calculate", map[string]any{
		"user_id": "user-1",
		"answers": []map[string]any{
			{"question_id": "not-a-question", "value": "x"},
		},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != "INVALID_ANSWERS" {
		t.Errorf("error = %+v, want INVALID_ANSWERS", env.Error)
	}
}

func TestProfileValidatePartial(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	// A lone optional answer passes only in partial mode.
	answers := []map[string]any{
		{"question_id": profile.QSweetness, "value": "dry"},
	}

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/profile/validate", map[string]any{
		"answers": answers,
		"partial": true,
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var partial struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(env.Data, &partial); err != nil {
		t.Fatal(err)
	}
	if !partial.Valid {
		t.Error("partial validation should pass for a lone optional answer")
	}

	status, env = doJSON(t, http.MethodPost, server.URL+"/api/v1/profile/validate", map[string]any{
		"answers": answers,
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var full struct {
		Valid  bool             `json:"valid"`
		Issues []map[string]any `json:"issues"`
	}
	if err := json.Unmarshal(env.Data, &full); err != nil {
		t.Fatal(err)
	}
	if full.Valid {
		t.Error("full validation should fail without the required answers")
	}
	if len(full.Issues) == 0 {
		t.Error("full validation should report the missing questions")
	}
}

func TestRecommendTonight(t *testing.T) {
	store := &fakeStore{}
	store.wines = append(store.wines, stockedWine("wine-1", "user-1"))
	server := newTestServer(t, store, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/recommendations", map[string]any{
		"type":    "tonight",
		"user_id": "user-1",
		"answers": validAnswers(),
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d (%+v), want 200", status, env.Error)
	}

	var resp recommend.Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("RequestID should be set")
	}
	if len(resp.Recommendations) == 0 {
		t.Error("a stocked cellar should yield at least one recommendation")
	}
	if resp.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", resp.Confidence)
	}
}

func TestRecommendRejectsUnknownType(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/recommendations", map[string]any{
		"type":    "horoscope",
		"user_id": "user-1",
		"answers": validAnswers(),
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}

func TestRecommendPairingRequiresFood(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/recommendations", map[string]any{
		"type":    "pairing",
		"user_id": "user-1",
		"answers": validAnswers(),
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != "INVALID_REQUEST" {
		t.Errorf("error = %+v, want INVALID_REQUEST", env.Error)
	}
}

func TestRecommendPairing(t *testing.T) {
	store := &fakeStore{}
	store.wines = append(store.wines, stockedWine("wine-1", "user-1"))
	server := newTestServer(t, store, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/recommendations", map[string]any{
		"type":    "pairing",
		"user_id": "user-1",
		"answers": validAnswers(),
		"food":    "grilled ribeye steak",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d (%+v), want 200", status, env.Error)
	}

	var resp recommend.Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Analysis == nil {
		t.Fatal("pairing response should carry the dish analysis")
	}
	if len(resp.Recommendations) == 0 {
		t.Error("a bold red should pair with grilled steak")
	}
}

func TestCellarLifecycle(t *testing.T) {
	store := &fakeStore{}
	server := newTestServer(t, store, nil)
	base := server.URL + "/api/v1/cellar/user-1/wines"

	status, env := doJSON(t, http.MethodPost, base, map[string]any{
		"name":     "Ridge Monte Bello",
		"producer": "Ridge",
		"type":     "red",
		"quantity": 2,
	})
	if status != http.StatusCreated {
		t.Fatalf("create = %d (%+v), want 201", status, env.Error)
	}
	var created models.Wine
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created wine should carry an ID")
	}

	status, env = doJSON(t, http.MethodGet, base+"/"+created.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("get = %d, want 200", status)
	}

	// Another owner must not see the wine.
	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/cellar/user-2/wines/"+created.ID, nil)
	if status != http.StatusNotFound {
		t.Errorf("cross-owner get = %d, want 404", status)
	}

	status, env = doJSON(t, http.MethodPost, base+"/"+created.ID+"/consume", nil)
	if status != http.StatusOK {
		t.Fatalf("consume = %d (%+v), want 200", status, env.Error)
	}
	var consumed struct {
		Remaining int `json:"remaining"`
	}
	if err := json.Unmarshal(env.Data, &consumed); err != nil {
		t.Fatal(err)
	}
	if consumed.Remaining != 1 {
		t.Errorf("remaining = %d, want 1", consumed.Remaining)
	}

	// Drain and verify the conflict on an empty entry.
	if status, _ = doJSON(t, http.MethodPost, base+"/"+created.ID+"/consume", nil); status != http.StatusOK {
		t.Fatalf("second consume = %d, want 200", status)
	}
	status, env = doJSON(t, http.MethodPost, base+"/"+created.ID+"/consume", nil)
	if status != http.StatusConflict {
		t.Errorf("consume at zero = %d, want 409", status)
	}
	if env.Error == nil || env.Error.Code != "NO_BOTTLES" {
		t.Errorf("error = %+v, want NO_BOTTLES", env.Error)
	}

	status, _ = doJSON(t, http.MethodDelete, base+"/"+created.ID, nil)
	if status != http.StatusOK {
		t.Errorf("delete = %d, want 200", status)
	}
	status, _ = doJSON(t, http.MethodGet, base+"/"+created.ID, nil)
	if status != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", status)
	}
}

func TestCellarCreateValidation(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/cellar/user-1/wines", map[string]any{
		"name": "Mystery Bottle",
		"type": "orange",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}

func TestCellarList(t *testing.T) {
	store := &fakeStore{}
	store.wines = append(store.wines,
		stockedWine("wine-1", "user-1"),
		stockedWine("wine-2", "user-1"),
		stockedWine("wine-3", "user-2"),
	)
	server := newTestServer(t, store, nil)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/v1/cellar/user-1/wines", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var data struct {
		Count   int `json:"count"`
		Bottles int `json:"bottles"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Count != 2 {
		t.Errorf("count = %d, want 2", data.Count)
	}
	if data.Bottles != 6 {
		t.Errorf("bottles = %d, want 6", data.Bottles)
	}
}

func TestCellarGaps(t *testing.T) {
	store := &fakeStore{}
	store.wines = append(store.wines, stockedWine("wine-1", "user-1"))
	server := newTestServer(t, store, nil)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/v1/cellar/user-1/gaps", map[string]any{
		"user_id": "user-1",
		"answers": validAnswers(),
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d (%+v), want 200", status, env.Error)
	}

	var report gaps.Report
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatal(err)
	}
	// An all-red cellar is missing the other core types.
	if len(report.MissingTypes) == 0 {
		t.Error("report should flag missing core types")
	}
}

func TestEnrichmentLookup(t *testing.T) {
	enricher := &fakeEnricher{
		result: enrich.Result{
			Record: models.ExternalWineRecord{
				Confidence: 0.8,
				Sources:    []string{"vivino"},
			},
			FromCache: false,
		},
	}
	server := newTestServer(t, &fakeStore{}, enricher)

	status, env := doJSON(t, http.MethodGet,
		server.URL+"/api/v1/enrichment/lookup?name=Monte+Bello&producer=Ridge&vintage=2018", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%+v), want 200", status, env.Error)
	}

	var result enrich.Result
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.Record.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", result.Record.Confidence)
	}
}

func TestEnrichmentLookupEmptyQuery(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, &fakeEnricher{})

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/v1/enrichment/lookup", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if env.Error == nil || env.Error.Code != "EMPTY_QUERY" {
		t.Errorf("error = %+v, want EMPTY_QUERY", env.Error)
	}
}

func TestEnrichmentLookupDisabled(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, nil)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/v1/enrichment/lookup?name=x", nil)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", status)
	}
	if env.Error == nil || env.Error.Code != "ENRICHMENT_DISABLED" {
		t.Errorf("error = %+v, want ENRICHMENT_DISABLED", env.Error)
	}
}

func TestEnrichmentLookupBadVintage(t *testing.T) {
	server := newTestServer(t, &fakeStore{}, &fakeEnricher{})

	status, _ := doJSON(t, http.MethodGet, server.URL+"/api/v1/enrichment/lookup?name=x&vintage=old", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}
