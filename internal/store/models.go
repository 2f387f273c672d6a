package store

import "time"

// The entities are flat records; relational invariants (one holding per
// user+symbol, one repost per user+article, ...) live in unique indexes,
// not in application code.

// User is an account holder.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	DisplayName  string `json:"displayName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is a server-side login session, referenced by the cookie token.
type Session struct {
	Token     string    `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Holding is a portfolio position.
type Holding struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_holding_user_symbol;not null" json:"userId"`
	Symbol    string    `gorm:"uniqueIndex:idx_holding_user_symbol;not null" json:"symbol"`
	Shares    float64   `json:"shares"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WatchlistItem is a symbol a user watches without holding it.
type WatchlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_watch_user_symbol;not null" json:"userId"`
	Symbol    string    `gorm:"uniqueIndex:idx_watch_user_symbol;not null" json:"symbol"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewsArticle is an ingested news item, from the provider feed or from the
// inbound-email hook. URL is the dedup key.
type NewsArticle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `json:"content"`
	SourceName  string    `json:"sourceName"`
	SourceURL   string    `gorm:"uniqueIndex" json:"sourceUrl"`
	Symbol      string    `gorm:"index" json:"symbol"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewsHighlight is a user-marked passage of an article.
type NewsHighlight struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_highlight_user_article;not null" json:"userId"`
	ArticleID uint      `gorm:"uniqueIndex:idx_highlight_user_article;not null" json:"articleId"`
	Quote     string    `json:"quote"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewsSummary is a stored LLM digest of a batch of articles.
type NewsSummary struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Markdown     string    `json:"markdown"`
	ArticleCount int       `json:"articleCount"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NotesRepost shares an article, with a note, to a user's followers.
type NotesRepost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_repost_user_article;not null" json:"userId"`
	ArticleID uint      `gorm:"uniqueIndex:idx_repost_user_article;not null" json:"articleId"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// Follow records that Follower follows Followee.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"uniqueIndex:idx_follow_pair;not null" json:"followerId"`
	FolloweeID uint      `gorm:"uniqueIndex:idx_follow_pair;not null" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OverseerLink lets an overseer view a ward's portfolio read-only.
type OverseerLink struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OverseerID uint      `gorm:"uniqueIndex:idx_overseer_pair;not null" json:"overseerId"`
	WardID     uint      `gorm:"uniqueIndex:idx_overseer_pair;not null" json:"wardId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Family is a household group sharing dashboards.
type Family struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	OwnerID   uint      `gorm:"index;not null" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FamilyMember is a user's membership in a family.
type FamilyMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FamilyID  uint      `gorm:"uniqueIndex:idx_member_pair;not null" json:"familyId"`
	UserID    uint      `gorm:"uniqueIndex:idx_member_pair;not null" json:"userId"`
	Role      string    `json:"role"` // "owner" or "member"
	CreatedAt time.Time `json:"createdAt"`
}

// FamilyInvite is a pending, emailed invitation into a family.
type FamilyInvite struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	FamilyID   uint       `gorm:"index;not null" json:"familyId"`
	Email      string     `gorm:"not null" json:"email"`
	Token      string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// DiscountPosition is one FTV (fair-target-value) snapshot of a symbol:
// a price target from a valuation document and the discount the market
// price had against it when noted.
type DiscountPosition struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_ftv_user_noted;not null" json:"userId"`
	Symbol    string    `gorm:"index;not null" json:"symbol"`
	Price     float64   `json:"price"`
	Target    float64   `json:"target"`
	Discount  float64   `json:"discount"` // percent
	DocRef    string    `json:"docRef"`   // reference into the source FTV document
	NotedAt   time.Time `gorm:"index:idx_ftv_user_noted,sort:desc" json:"notedAt"`
	CreatedAt time.Time `json:"createdAt"`
}
