package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/finview/finview"
)

// AddPosition records an FTV snapshot: the discount is computed here so
// every stored row is self-consistent with its price and target.
func (s *Store) AddPosition(userID uint, symbol string, price, target float64, docRef string, notedAt time.Time) (*DiscountPosition, error) {
	discount, err := finview.DiscountOf(price, target)
	if err != nil {
		return nil, fmt.Errorf("invalid position for %s: %w", symbol, err)
	}
	if notedAt.IsZero() {
		notedAt = time.Now()
	}
	p := &DiscountPosition{
		UserID:   userID,
		Symbol:   strings.ToUpper(symbol),
		Price:    price,
		Target:   target,
		Discount: float64(discount),
		DocRef:   docRef,
		NotedAt:  notedAt,
	}
	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("could not record position for %s: %w", symbol, err)
	}
	return p, nil
}

// Positions lists all of a user's FTV snapshots, newest first.
func (s *Store) Positions(userID uint) ([]DiscountPosition, error) {
	var pp []DiscountPosition
	err := s.db.Where("user_id = ?", userID).Order("noted_at DESC, id DESC").Find(&pp).Error
	return pp, err
}

// LatestPositions returns the newest snapshot per symbol, newest first.
func (s *Store) LatestPositions(userID uint) ([]DiscountPosition, error) {
	pp, err := s.Positions(userID)
	if err != nil {
		return nil, err
	}
	return finview.LatestBySymbol(pp, func(p DiscountPosition) string { return p.Symbol }), nil
}
