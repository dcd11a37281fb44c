// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/vinoteca/internal/models"
)

// Inventory errors
var (
	ErrWineNotFound = errors.New("wine not found")
	ErrNoBottles    = errors.New("no bottles left to consume")
	ErrInvalidWine  = errors.New("invalid wine")
)

const wineColumns = `id, owner_id, name, producer, type, region, country,
	varietals, vintage, quantity, purchase_price, personal_rating,
	window_earliest, window_peak_start, window_peak_end, window_latest`

// CreateWine inserts a new cellar entry. A missing ID is generated.
func (s *Store) CreateWine(ctx context.Context, wine *models.Wine) error {
	if wine.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidWine)
	}
	if wine.OwnerID == "" {
		return fmt.Errorf("%w: owner_id must not be empty", ErrInvalidWine)
	}
	if !wine.Type.Valid() {
		return fmt.Errorf("%w: unknown wine type %q", ErrInvalidWine, wine.Type)
	}
	if wine.ID == "" {
		wine.ID = uuid.New().String()
	}

	varietals, err := json.Marshal(wine.Varietals)
	if err != nil {
		return fmt.Errorf("failed to encode varietals: %w", err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO wines (` + wineColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	earliest, peakStart, peakEnd, latest := windowColumns(wine.Window)
	_, err = s.conn.ExecContext(ctx, query,
		wine.ID, wine.OwnerID, wine.Name, wine.Producer, string(wine.Type),
		wine.Region, wine.Country, string(varietals), wine.Vintage,
		wine.Quantity, wine.PurchasePrice, wine.PersonalRating,
		earliest, peakStart, peakEnd, latest,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create wine: %w", err)
	}

	s.logger.Debug().Str("wine_id", wine.ID).Str("owner_id", wine.OwnerID).Msg("wine created")
	return nil
}

// GetWine retrieves one cellar entry scoped to its owner.
func (s *Store) GetWine(ctx context.Context, ownerID, id string) (*models.Wine, error) {
	query := `SELECT ` + wineColumns + ` FROM wines WHERE owner_id = ? AND id = ?`
	row := s.conn.QueryRowContext(ctx, query, ownerID, id)
	return scanWine(row)
}

// WinesByOwner retrieves all cellar entries for an owner, newest first.
func (s *Store) WinesByOwner(ctx context.Context, ownerID string) ([]models.Wine, error) {
	query := `SELECT ` + wineColumns + ` FROM wines
		WHERE owner_id = ? ORDER BY created_at DESC, id`

	rows, err := s.conn.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Wine
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wines: %w", err)
	}
	return out, nil
}

// UpdateWine replaces the mutable fields of a cellar entry.
func (s *Store) UpdateWine(ctx context.Context, wine *models.Wine) error {
	if !wine.Type.Valid() {
		return fmt.Errorf("%w: unknown wine type %q", ErrInvalidWine, wine.Type)
	}
	varietals, err := json.Marshal(wine.Varietals)
	if err != nil {
		return fmt.Errorf("failed to encode varietals: %w", err)
	}

	query := `UPDATE wines SET
		name = ?, producer = ?, type = ?, region = ?, country = ?,
		varietals = ?, vintage = ?, quantity = ?, purchase_price = ?,
		personal_rating = ?,
		window_earliest = ?, window_peak_start = ?, window_peak_end = ?, window_latest = ?,
		updated_at = ?
	WHERE owner_id = ? AND id = ?`

	earliest, peakStart, peakEnd, latest := windowColumns(wine.Window)
	res, err := s.conn.ExecContext(ctx, query,
		wine.Name, wine.Producer, string(wine.Type), wine.Region, wine.Country,
		string(varietals), wine.Vintage, wine.Quantity, wine.PurchasePrice,
		wine.PersonalRating,
		earliest, peakStart, peakEnd, latest,
		time.Now().UTC(),
		wine.OwnerID, wine.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wine: %w", err)
	}
	return requireRow(res)
}

// ConsumeBottle decrements the quantity of a wine by one and returns
// the remaining count. Consuming from an empty entry is an error; the
// row itself stays so the tasting history keeps its anchor.
func (s *Store) ConsumeBottle(ctx context.Context, ownerID, id string) (int, error) {
	query := `UPDATE wines SET quantity = quantity - 1, updated_at = ?
		WHERE owner_id = ? AND id = ? AND quantity > 0`

	res, err := s.conn.ExecContext(ctx, query, time.Now().UTC(), ownerID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to consume bottle: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// Either the wine does not exist or it is already empty.
		if _, err := s.GetWine(ctx, ownerID, id); err != nil {
			return 0, err
		}
		return 0, ErrNoBottles
	}

	var remaining int
	row := s.conn.QueryRowContext(ctx,
		`SELECT quantity FROM wines WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err := row.Scan(&remaining); err != nil {
		return 0, fmt.Errorf("failed to read remaining quantity: %w", err)
	}

	s.logger.Debug().Str("wine_id", id).Int("remaining", remaining).Msg("bottle consumed")
	return remaining, nil
}

// DeleteWine removes a cellar entry.
func (s *Store) DeleteWine(ctx context.Context, ownerID, id string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM wines WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete wine: %w", err)
	}
	return requireRow(res)
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanWine(row scanner) (*models.Wine, error) {
	var (
		w         models.Wine
		wineType  string
		varietals string
		earliest  sql.NullTime
		peakStart sql.NullTime
		peakEnd   sql.NullTime
		latest    sql.NullTime
	)

	err := row.Scan(
		&w.ID, &w.OwnerID, &w.Name, &w.Producer, &wineType,
		&w.Region, &w.Country, &varietals, &w.Vintage,
		&w.Quantity, &w.PurchasePrice, &w.PersonalRating,
		&earliest, &peakStart, &peakEnd, &latest,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan wine: %w", err)
	}

	w.Type = models.WineType(wineType)
	if err := json.Unmarshal([]byte(varietals), &w.Varietals); err != nil {
		return nil, fmt.Errorf("failed to decode varietals: %w", err)
	}

	// All four boundaries are written together, so one set column
	// means the window exists.
	if earliest.Valid {
		w.Window = &models.DrinkingWindow{
			Earliest:  earliest.Time,
			PeakStart: peakStart.Time,
			PeakEnd:   peakEnd.Time,
			Latest:    latest.Time,
		}
	}

	return &w, nil
}

func windowColumns(w *models.DrinkingWindow) (earliest, peakStart, peakEnd, latest any) {
	if w == nil {
		return nil, nil, nil, nil
	}
	return w.Earliest, w.PeakStart, w.PeakEnd, w.Latest
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrWineNotFound
	}
	return nil
}
