package store

import (
	"fmt"

	"gorm.io/gorm/clause"
)

// SaveArticle inserts an article, deduplicating on its URL. The stored row
// is returned either way.
func (s *Store) SaveArticle(a *NewsArticle) (*NewsArticle, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_url"}},
		DoNothing: true,
	}).Create(a).Error
	if err != nil {
		return nil, fmt.Errorf("could not save article %q: %w", a.Title, err)
	}
	if a.ID == 0 {
		// Conflict: fetch the existing row.
		var existing NewsArticle
		if err := s.db.Where("source_url = ?", a.SourceURL).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	return a, nil
}

// Articles lists the most recent articles, newest first. A symbol filter is
// applied when non-empty.
func (s *Store) Articles(symbol string, limit int) ([]NewsArticle, error) {
	q := s.db.Order("published_at DESC").Limit(limit)
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	var aa []NewsArticle
	err := q.Find(&aa).Error
	return aa, err
}

// Article fetches one article by id.
func (s *Store) Article(id uint) (*NewsArticle, error) {
	var a NewsArticle
	if err := s.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// HighlightArticle marks a passage of an article for a user. A second
// highlight of the same article replaces the quote.
func (s *Store) HighlightArticle(userID, articleID uint, quote string) (*NewsHighlight, error) {
	if _, err := s.Article(articleID); err != nil {
		return nil, fmt.Errorf("cannot highlight article %d: %w", articleID, err)
	}
	h := &NewsHighlight{UserID: userID, ArticleID: articleID, Quote: quote}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quote"}),
	}).Create(h).Error
	if err != nil {
		return nil, fmt.Errorf("could not highlight article %d: %w", articleID, err)
	}
	return h, nil
}

// Highlights lists a user's highlights, newest first.
func (s *Store) Highlights(userID uint) ([]NewsHighlight, error) {
	var hh []NewsHighlight
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&hh).Error
	return hh, err
}

// SaveSummary stores an LLM digest.
func (s *Store) SaveSummary(markdown, model string, articleCount int) (*NewsSummary, error) {
	sum := &NewsSummary{Markdown: markdown, Model: model, ArticleCount: articleCount}
	if err := s.db.Create(sum).Error; err != nil {
		return nil, fmt.Errorf("could not save summary: %w", err)
	}
	return sum, nil
}

// LatestSummary returns the most recent digest.
func (s *Store) LatestSummary() (*NewsSummary, error) {
	var sum NewsSummary
	if err := s.db.Order("created_at DESC").First(&sum).Error; err != nil {
		return nil, err
	}
	return &sum, nil
}
