// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package recommend coordinates the scoring, pairing, gap-analysis and
// enrichment components into complete recommendation responses. One engine
// serves four request types: tonight (what to open from the cellar),
// purchase (what to buy next), pairing (what matches a dish) and
// contextual (tonight under explicit situational constraints).
package recommend

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vinoteca/internal/cache"
	"github.com/tomtom215/vinoteca/internal/gaps"
	"github.com/tomtom215/vinoteca/internal/models"
	"github.com/tomtom215/vinoteca/internal/pairing"
	"github.com/tomtom215/vinoteca/internal/scoring"
)

// RequestType selects the recommendation flow.
type RequestType string

const (
	RequestTonight    RequestType = "tonight"
	RequestPurchase   RequestType = "purchase"
	RequestPairing    RequestType = "pairing"
	RequestContextual RequestType = "contextual"
)

var (
	// ErrUnknownRequestType is returned for a request type outside the
	// four known flows.
	ErrUnknownRequestType = errors.New("unknown recommendation request type")

	// ErrMissingContext is returned when a contextual request carries no
	// context. This is a caller error, never defaulted away.
	ErrMissingContext = errors.New("contextual request requires a non-empty context")

	// ErrMissingFood is returned when a pairing request has no food
	// description.
	ErrMissingFood = errors.New("pairing request requires a food description")
)

const (
	// defaultMaxResults bounds tonight and purchase responses.
	defaultMaxResults = 5

	// responseTTL is how long a computed response may be replayed for an
	// identical request.
	responseTTL = 15 * time.Minute

	// Caps on how many purchase candidates each gap channel contributes.
	maxRegionCandidates   = 3
	maxVarietalCandidates = 3

	// defaultEstimatedPrice is used when the profile has no price range.
	defaultEstimatedPrice = 25
)

// Request is one recommendation request.
type Request struct {
	Type   RequestType `json:"type"`
	UserID string      `json:"user_id"`

	// Context carries situational constraints; required for contextual
	// requests, optional elsewhere.
	Context *models.RecommendationContext `json:"context,omitempty"`

	// Food and FoodOptions drive pairing requests.
	Food        string                 `json:"food,omitempty"`
	FoodOptions pairing.AnalyzeOptions `json:"-"`

	// MaxResults bounds the response; zero means the default.
	MaxResults int `json:"max_results,omitempty"`
}

// Response is one complete recommendation answer.
type Response struct {
	RequestID string      `json:"request_id"`
	Type      RequestType `json:"type"`

	Recommendations []models.Recommendation `json:"recommendations"`

	// Alternatives are the pairing flow's runners-up.
	Alternatives []models.Recommendation `json:"alternatives,omitempty"`

	// Analysis is set on pairing responses.
	Analysis *models.FoodAnalysis `json:"analysis,omitempty"`

	// Gaps is set on purchase responses.
	Gaps *gaps.Report `json:"gaps,omitempty"`

	// Confidence is the top recommendation's score, zero when empty.
	Confidence float64 `json:"confidence"`

	Reasoning string `json:"reasoning"`

	// FollowUps suggest the next question to ask the user.
	FollowUps []string `json:"follow_ups,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// InventoryReader is the engine's read-only view of a user's cellar.
type InventoryReader interface {
	WinesByOwner(ctx context.Context, ownerID string) ([]models.Wine, error)
}

// Engine produces recommendation responses. Safe for concurrent use; the
// response cache is its only mutable state.
type Engine struct {
	inventory InventoryReader
	scorer    *scoring.Scorer
	matcher   *pairing.Matcher
	analyzer  *gaps.Analyzer
	clock     cache.Clock
	responses *cache.TTL[Response]
	logger    zerolog.Logger
}

// NewEngine wires the recommendation components together. A nil clock
// falls back to the wall clock.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(inventory InventoryReader, scorer *scoring.Scorer, matcher *pairing.Matcher, analyzer *gaps.Analyzer, clock cache.Clock, logger zerolog.Logger) *Engine {
	if clock == nil {
		clock = cache.RealClock{}
	}
	return &Engine{
		inventory: inventory,
		scorer:    scorer,
		matcher:   matcher,
		analyzer:  analyzer,
		clock:     clock,
		responses: cache.NewTTL[Response](responseTTL, clock),
		logger:    logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend dispatches a request to its flow. Responses for identical
// requests are replayed from a short-lived cache.
func (e *Engine) Recommend(ctx context.Context, profile *models.TasteProfile, req Request) (Response, error) {
	key := requestKey(req, profile)
	if resp, ok := e.responses.Get(key); ok {
		e.logger.Debug().Str("request_id", resp.RequestID).Msg("response replayed from cache")
		return resp, nil
	}

	var (
		resp Response
		err  error
	)
	switch req.Type {
	case RequestTonight:
		resp, err = e.tonight(ctx, profile, req)
	case RequestPurchase:
		resp, err = e.purchase(ctx, profile, req)
	case RequestPairing:
		resp, err = e.pairing(ctx, profile, req)
	case RequestContextual:
		resp, err = e.contextual(ctx, profile, req)
	default:
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownRequestType, req.Type)
	}
	if err != nil {
		return Response{}, err
	}

	resp.RequestID = uuid.NewString()
	resp.Type = req.Type
	resp.FollowUps = followUpQuestions[req.Type]
	resp.GeneratedAt = e.clock.Now()

	e.responses.Set(key, resp)

	e.logger.Info().
		Str("request_id", resp.RequestID).
		Str("type", string(req.Type)).
		Str("user_id", req.UserID).
		Int("recommendations", len(resp.Recommendations)).
		Float64("confidence", resp.Confidence).
		Msg("recommendation generated")

	return resp, nil
}

// SweepResponses drops expired cached responses and returns how many
// were removed. Called from the cache janitor loop.
func (e *Engine) SweepResponses() int {
	return e.responses.Sweep()
}

// tonight scores every in-stock wine against the profile, attaches
// drinking-window urgency, and ranks. An empty cellar is a valid
// zero-confidence result.
func (e *Engine) tonight(ctx context.Context, profile *models.TasteProfile, req Request) (Response, error) {
	wines, err := e.inventory.WinesByOwner(ctx, req.UserID)
	if err != nil {
		return Response{}, fmt.Errorf("load inventory: %w", err)
	}

	now := e.clock.Now()
	var recs []models.Recommendation
	for i := range wines {
		w := wines[i]
		if !w.InStock() {
			continue
		}

		urgency := windowUrgency(&w, now)
		if req.Context != nil && urgency < req.Context.UrgencyFilter {
			continue
		}

		result := e.scorer.Score(scoring.Input{
			Wine:    w,
			Profile: profile,
			Context: req.Context,
			Urgency: urgency,
		})

		serving := servingByType[w.Type]
		recs = append(recs, models.Recommendation{
			Target:     models.InventoryTarget(w.ID),
			Reasoning:  result.Reasoning,
			Confidence: result.Score,
			Urgency:    urgency,
			Serving:    &serving,
		})
	}

	if len(recs) == 0 {
		return Response{
			Recommendations: []models.Recommendation{},
			Confidence:      0,
			Reasoning:       "no wines in your cellar match this request; add bottles or relax the filters",
		}, nil
	}

	rankByConfidence(recs)
	recs = truncate(recs, maxResults(req))
	recs[0].EducationalNote = educationalNote(profile.ExperienceLevel, typeOfTarget(recs[0], wines))

	return Response{
		Recommendations: recs,
		Confidence:      recs[0].Confidence,
		Reasoning:       fmt.Sprintf("ranked %d wines from your cellar against your taste profile", len(recs)),
	}, nil
}

// purchase finds cellar gaps and synthesizes templated suggestions that
// fill them, scored with the purchase variant that swaps drinking-window
// urgency for novelty.
func (e *Engine) purchase(ctx context.Context, profile *models.TasteProfile, req Request) (Response, error) {
	wines, err := e.inventory.WinesByOwner(ctx, req.UserID)
	if err != nil {
		return Response{}, fmt.Errorf("load inventory: %w", err)
	}

	report := e.analyzer.Analyze(profile, wines)
	price := estimatePrice(profile)

	var recs []models.Recommendation
	for _, sw := range purchaseCandidates(report, price) {
		result := e.scorer.ScorePurchase(sw, profile, req.Context, true)
		recs = append(recs, models.Recommendation{
			Target:     models.PurchaseTarget(sw),
			Reasoning:  result.Reasoning,
			Confidence: result.Score,
		})
	}

	if len(recs) == 0 {
		return Response{
			Recommendations: []models.Recommendation{},
			Gaps:            &report,
			Confidence:      0,
			Reasoning:       "your cellar already covers your stated preferences; nothing pressing to buy",
		}, nil
	}

	rankByConfidence(recs)
	recs = truncate(recs, maxResults(req))

	return Response{
		Recommendations: recs,
		Gaps:            &report,
		Confidence:      recs[0].Confidence,
		Reasoning:       "suggestions chosen to broaden your cellar where it is thinnest",
	}, nil
}

// pairing delegates to the food pairing matcher with the user's inventory
// as the candidate pool.
func (e *Engine) pairing(ctx context.Context, profile *models.TasteProfile, req Request) (Response, error) {
	if req.Food == "" {
		return Response{}, ErrMissingFood
	}

	wines, err := e.inventory.WinesByOwner(ctx, req.UserID)
	if err != nil {
		return Response{}, fmt.Errorf("load inventory: %w", err)
	}

	analysis := pairing.Analyze(req.Food, req.FoodOptions)
	match := e.matcher.Match(analysis, wines, profile, req.Context, e.clock.Now())

	recs := match.Recommendations
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return Response{
		Recommendations: recs,
		Alternatives:    match.Alternatives,
		Analysis:        &match.Analysis,
		Confidence:      match.Confidence,
		Reasoning:       match.Reasoning,
	}, nil
}

// contextual is the tonight flow under an explicit context. A missing or
// empty context is a caller error reported immediately.
func (e *Engine) contextual(ctx context.Context, profile *models.TasteProfile, req Request) (Response, error) {
	if req.Context.IsEmpty() {
		return Response{}, ErrMissingContext
	}
	return e.tonight(ctx, profile, req)
}

// purchaseCandidates synthesizes suggested wines from a gap report: one
// per missing region and varietal (capped per channel) plus one per
// missing or underrepresented core type.
func purchaseCandidates(report gaps.Report, price float64) []models.SuggestedWine {
	var out []models.SuggestedWine

	for i, region := range report.MissingRegions {
		if i >= maxRegionCandidates {
			break
		}
		sw, ok := regionSuggestions[region]
		if !ok {
			sw = models.SuggestedWine{
				Name:   fmt.Sprintf("A well-made bottle from %s", region),
				Type:   models.WineTypeRed,
				Region: region,
			}
		}
		sw.EstimatedPrice = price
		out = append(out, sw)
	}

	for i, varietal := range report.MissingVarietals {
		if i >= maxVarietalCandidates {
			break
		}
		t, ok := gaps.TypeForVarietal(varietal)
		if !ok {
			t = models.WineTypeRed
		}
		out = append(out, models.SuggestedWine{
			Name:           fmt.Sprintf("A single-varietal %s", varietal),
			Type:           t,
			Varietals:      []string{varietal},
			EstimatedPrice: price,
		})
	}

	seen := make(map[models.WineType]bool)
	for _, t := range append(append([]models.WineType{}, report.MissingTypes...), report.UnderrepresentedTypes...) {
		if seen[t] {
			continue
		}
		seen[t] = true
		if sw, ok := typeSuggestions[t]; ok {
			sw.EstimatedPrice = price
			out = append(out, sw)
		}
	}

	return out
}

// estimatePrice derives a candidate price from the profile's range.
func estimatePrice(profile *models.TasteProfile) float64 {
	if profile.General.PriceRange.IsZero() {
		return defaultEstimatedPrice
	}
	return profile.General.PriceRange.Midpoint()
}

// educationalNote picks the templated note for the level and type.
func educationalNote(level models.ExperienceLevel, t models.WineType) string {
	notes, ok := educationalNotes[level]
	if !ok {
		notes = educationalNotes[models.ExperienceBeginner]
	}
	return notes[t]
}

// typeOfTarget resolves an inventory recommendation back to its wine type.
func typeOfTarget(rec models.Recommendation, wines []models.Wine) models.WineType {
	id, ok := rec.Target.WineID()
	if !ok {
		return models.WineTypeRed
	}
	for i := range wines {
		if wines[i].ID == id {
			return wines[i].Type
		}
	}
	return models.WineTypeRed
}

// windowUrgency reads the drinking-window urgency, zero when unknown.
func windowUrgency(w *models.Wine, now time.Time) float64 {
	if w.Window == nil {
		return 0
	}
	return w.Window.StatusAt(now).Urgency()
}

// rankByConfidence sorts descending, stable so equal scores keep cellar
// order.
func rankByConfidence(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
}

func truncate(recs []models.Recommendation, n int) []models.Recommendation {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}

func maxResults(req Request) int {
	if req.MaxResults > 0 {
		return req.MaxResults
	}
	return defaultMaxResults
}

// requestKey builds the replay-cache key. Requests differing in any field
// that changes the answer must produce different keys, so the key folds in
// the full context including the price range, the dish-analysis options,
// and a digest of the profile so resubmitted answers never replay a
// response computed from the stale profile.
func requestKey(req Request, profile *models.TasteProfile) string {
	occasion, food, price, urgency := "", "", "", 0.0
	if req.Context != nil {
		occasion = req.Context.Occasion
		food = req.Context.FoodHint
		urgency = req.Context.UrgencyFilter
		if pr := req.Context.PriceRange; pr != nil {
			price = fmt.Sprintf("%.2f-%.2f-%s", pr.Min, pr.Max, pr.Currency)
		}
	}
	opts := fmt.Sprintf("%s^%s^%s^%s",
		req.FoodOptions.Cuisine, req.FoodOptions.Method,
		req.FoodOptions.SpiceLevel, req.FoodOptions.Richness)
	return fmt.Sprintf("%s|%s|%s|%s|%s|%.2f|%s|%s|%d|%s",
		req.UserID, req.Type, occasion, food, price, urgency,
		req.Food, opts, req.MaxResults, profileDigest(profile))
}

// profileDigest hashes the profile's serialized form. An unmarshalable
// profile disables replay for its requests rather than risking a collision.
func profileDigest(profile *models.TasteProfile) string {
	if profile == nil {
		return "none"
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return uuid.NewString()
	}
	digest := fnv.New64a()
	_, _ = digest.Write(payload)
	return strconv.FormatUint(digest.Sum64(), 16)
}
