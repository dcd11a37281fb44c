// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package models defines the shared domain types for the recommendation
// engine: wines and their drinking windows, taste profiles, recommendations,
// food analyses, and merged external wine records.
//
// Two shapes in this package are interoperability contracts and must not
// change their wire form:
//
//   - The Recommendation target variant ("inventory" vs "purchase"). It is
//     modeled as a tagged union with constructors so that a target with
//     neither a wine ID nor a suggested wine cannot be expressed.
//   - The closed enums for drinking-window status (too_young, ready, peak,
//     declining, over_hill) and food category (red_meat, white_fish, salmon,
//     poultry, pork, cheese, pasta, spicy_food, dessert, general).
//
// Everything here is plain data plus small derivation methods. Nothing in
// this package performs I/O or holds mutable shared state.
package models
