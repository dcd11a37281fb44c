// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package models

import "time"

// WindowStatus is the lifecycle stage of a wine relative to its drinking
// window. Values are wire-stable.
type WindowStatus string

const (
	StatusTooYoung  WindowStatus = "too_young"
	StatusReady     WindowStatus = "ready"
	StatusPeak      WindowStatus = "peak"
	StatusDeclining WindowStatus = "declining"
	StatusOverHill  WindowStatus = "over_hill"
)

// Urgency returns the consumption urgency for a status.
//
// The table is intentionally non-monotonic: a declining wine is still
// fairly urgent, while an over-the-hill wine scores low because it has
// likely already degraded. The relative ordering
// peak > declining > ready > over_hill > too_young is relied on by
// ranking and must not change.
func (s WindowStatus) Urgency() float64 {
	switch s {
	case StatusTooYoung:
		return 0.1
	case StatusReady:
		return 0.6
	case StatusPeak:
		return 0.9
	case StatusDeclining:
		return 0.8
	case StatusOverHill:
		return 0.3
	default:
		return 0.0
	}
}

// DrinkingWindow holds the four calendar boundaries of a wine's life.
// Well-formed windows satisfy Earliest <= PeakStart <= PeakEnd <= Latest.
// A violation is a data-quality defect in the source record, not a runtime
// fault: StatusAt still derives a best-effort status by evaluating the
// boundaries in order rather than failing the recommendation pass.
type DrinkingWindow struct {
	Earliest  time.Time `json:"earliest"`
	PeakStart time.Time `json:"peak_start"`
	PeakEnd   time.Time `json:"peak_end"`
	Latest    time.Time `json:"latest"`
}

// IsOrdered reports whether the four boundaries are properly ordered.
// Used by validation reporting; classification does not depend on it.
func (w DrinkingWindow) IsOrdered() bool {
	return !w.Earliest.After(w.PeakStart) &&
		!w.PeakStart.After(w.PeakEnd) &&
		!w.PeakEnd.After(w.Latest)
}

// StatusAt classifies the window at the given instant.
//
// The checks run in boundary order, which makes the function total even
// for malformed windows:
//
//	now <  earliest              => too_young
//	now <  peakStart             => ready
//	peakStart <= now <= peakEnd  => peak
//	peakEnd < now <= latest      => declining
//	now >  latest                => over_hill
func (w DrinkingWindow) StatusAt(now time.Time) WindowStatus {
	switch {
	case now.Before(w.Earliest):
		return StatusTooYoung
	case now.Before(w.PeakStart):
		return StatusReady
	case !now.After(w.PeakEnd):
		return StatusPeak
	case !now.After(w.Latest):
		return StatusDeclining
	default:
		return StatusOverHill
	}
}

// UrgencyAt returns the urgency scalar for the window at the given instant.
func (w DrinkingWindow) UrgencyAt(now time.Time) float64 {
	return w.StatusAt(now).Urgency()
}
