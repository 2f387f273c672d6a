package store

import (
	"fmt"
	"time"
)

// FollowUser records that follower follows followee.
func (s *Store) FollowUser(followerID, followeeID uint) (*Follow, error) {
	if followerID == followeeID {
		return nil, fmt.Errorf("cannot follow yourself")
	}
	if _, err := s.UserByID(followeeID); err != nil {
		return nil, fmt.Errorf("cannot follow user %d: %w", followeeID, err)
	}
	f := &Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.db.Create(f).Error; err != nil {
		return nil, fmt.Errorf("could not follow user %d: %w", followeeID, err)
	}
	return f, nil
}

// Unfollow removes a follow edge. Removing an absent edge is not an error.
func (s *Store) Unfollow(followerID, followeeID uint) error {
	return s.db.Delete(&Follow{}, "follower_id = ? AND followee_id = ?", followerID, followeeID).Error
}

// Following lists the users someone follows.
func (s *Store) Following(userID uint) ([]User, error) {
	var uu []User
	err := s.db.
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&uu).Error
	return uu, err
}

// Followers lists the users following someone.
func (s *Store) Followers(userID uint) ([]User, error) {
	var uu []User
	err := s.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Find(&uu).Error
	return uu, err
}

// RepostArticle shares an article with a note to the user's followers.
func (s *Store) RepostArticle(userID, articleID uint, note string) (*NotesRepost, error) {
	if _, err := s.Article(articleID); err != nil {
		return nil, fmt.Errorf("cannot repost article %d: %w", articleID, err)
	}
	r := &NotesRepost{UserID: userID, ArticleID: articleID, Note: note}
	if err := s.db.Create(r).Error; err != nil {
		return nil, fmt.Errorf("could not repost article %d: %w", articleID, err)
	}
	return r, nil
}

// FeedItem is one repost in a user's feed, joined with its article and author.
type FeedItem struct {
	Repost  NotesRepost `json:"repost"`
	Article NewsArticle `json:"article"`
	Author  User        `json:"author"`
}

// Feed lists reposts by the users someone follows, newest first.
func (s *Store) Feed(userID uint, limit int) ([]FeedItem, error) {
	var reposts []NotesRepost
	err := s.db.
		Joins("JOIN follows ON follows.followee_id = notes_reposts.user_id").
		Where("follows.follower_id = ?", userID).
		Order("notes_reposts.created_at DESC").
		Limit(limit).
		Find(&reposts).Error
	if err != nil {
		return nil, err
	}

	feed := make([]FeedItem, 0, len(reposts))
	for _, r := range reposts {
		article, err := s.Article(r.ArticleID)
		if err != nil {
			return nil, fmt.Errorf("feed references missing article %d: %w", r.ArticleID, err)
		}
		author, err := s.UserByID(r.UserID)
		if err != nil {
			return nil, fmt.Errorf("feed references missing user %d: %w", r.UserID, err)
		}
		feed = append(feed, FeedItem{Repost: r, Article: *article, Author: *author})
	}
	return feed, nil
}

// CreateOverseerLink grants overseer read access to ward's portfolio.
func (s *Store) CreateOverseerLink(overseerID, wardID uint) (*OverseerLink, error) {
	if overseerID == wardID {
		return nil, fmt.Errorf("cannot oversee yourself")
	}
	l := &OverseerLink{OverseerID: overseerID, WardID: wardID, CreatedAt: time.Now()}
	if err := s.db.Create(l).Error; err != nil {
		return nil, fmt.Errorf("could not create overseer link: %w", err)
	}
	return l, nil
}

// Wards lists the users an overseer may view.
func (s *Store) Wards(overseerID uint) ([]User, error) {
	var uu []User
	err := s.db.
		Joins("JOIN overseer_links ON overseer_links.ward_id = users.id").
		Where("overseer_links.overseer_id = ?", overseerID).
		Find(&uu).Error
	return uu, err
}

// Oversees reports whether overseer may view ward's portfolio.
func (s *Store) Oversees(overseerID, wardID uint) (bool, error) {
	var n int64
	err := s.db.Model(&OverseerLink{}).
		Where("overseer_id = ? AND ward_id = ?", overseerID, wardID).
		Count(&n).Error
	return n > 0, err
}
