package store

import (
	"fmt"
	"strings"

	"github.com/finview/finview"
	"gorm.io/gorm/clause"
)

// UpsertHolding creates or updates the user's position in a symbol.
// Symbols are stored uppercase.
func (s *Store) UpsertHolding(userID uint, symbol string, shares float64) (*Holding, error) {
	if shares <= 0 {
		return nil, fmt.Errorf("shares must be positive, got %v", shares)
	}
	h := &Holding{UserID: userID, Symbol: strings.ToUpper(symbol), Shares: shares}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"shares", "updated_at"}),
	}).Create(h).Error
	if err != nil {
		return nil, fmt.Errorf("could not upsert holding %s: %w", symbol, err)
	}
	return h, nil
}

// Holdings lists the user's positions, alphabetically by symbol.
func (s *Store) Holdings(userID uint) ([]Holding, error) {
	var hh []Holding
	err := s.db.Where("user_id = ?", userID).Order("symbol").Find(&hh).Error
	return hh, err
}

// DeleteHolding removes the user's position in a symbol.
func (s *Store) DeleteHolding(userID uint, symbol string) error {
	return s.db.Delete(&Holding{}, "user_id = ? AND symbol = ?", userID, strings.ToUpper(symbol)).Error
}

// DomainHoldings converts the user's rows to the domain form the aligner
// consumes.
func (s *Store) DomainHoldings(userID uint) ([]finview.Holding, error) {
	rows, err := s.Holdings(userID)
	if err != nil {
		return nil, err
	}
	hh := make([]finview.Holding, 0, len(rows))
	for _, r := range rows {
		hh = append(hh, finview.Holding{Symbol: r.Symbol, Shares: r.Shares})
	}
	return hh, nil
}

// AddWatch puts a symbol on the user's watchlist.
func (s *Store) AddWatch(userID uint, symbol string) (*WatchlistItem, error) {
	w := &WatchlistItem{UserID: userID, Symbol: strings.ToUpper(symbol)}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(w).Error
	if err != nil {
		return nil, fmt.Errorf("could not watch %s: %w", symbol, err)
	}
	return w, nil
}

// Watchlist lists the user's watched symbols, alphabetically.
func (s *Store) Watchlist(userID uint) ([]WatchlistItem, error) {
	var ww []WatchlistItem
	err := s.db.Where("user_id = ?", userID).Order("symbol").Find(&ww).Error
	return ww, err
}

// RemoveWatch takes a symbol off the user's watchlist.
func (s *Store) RemoveWatch(userID uint, symbol string) error {
	return s.db.Delete(&WatchlistItem{}, "user_id = ? AND symbol = ?", userID, strings.ToUpper(symbol)).Error
}
