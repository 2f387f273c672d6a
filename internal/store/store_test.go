package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory(uuid.NewString())
	require.NoError(t, err, "open in-memory store")
	return s
}

func newTestUser(t *testing.T, s *Store, email string) *User {
	t.Helper()
	u, err := s.CreateUser(email, "hunter2!", "Tester")
	require.NoError(t, err)
	return u
}

func TestCreateAndAuthenticateUser(t *testing.T) {
	s := newTestStore(t)

	u := newTestUser(t, s, "alice@example.com")
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "hunter2!", u.PasswordHash, "password must be stored hashed")

	got, err := s.Authenticate("alice@example.com", "hunter2!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = s.Authenticate("nobody@example.com", "hunter2!")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := newTestStore(t)
	newTestUser(t, s, "alice@example.com")
	_, err := s.CreateUser("alice@example.com", "other", "Clone")
	assert.Error(t, err)
}

func TestSessions(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice@example.com")

	sess, err := s.CreateSession(u.ID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	got, err := s.SessionUser(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, s.DeleteSession(sess.Token))
	_, err = s.SessionUser(sess.Token)
	assert.Error(t, err, "deleted session must not resolve")
}

func TestExpiredSessionNotResolved(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice@example.com")

	sess, err := s.CreateSession(u.ID, -time.Minute)
	require.NoError(t, err)
	_, err = s.SessionUser(sess.Token)
	assert.Error(t, err)

	require.NoError(t, s.PurgeExpiredSessions())
}

func TestHoldingUpsert(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice@example.com")

	_, err := s.UpsertHolding(u.ID, "aapl", 10)
	require.NoError(t, err)
	// Same (user, symbol) pair again: the row is updated, not duplicated.
	_, err = s.UpsertHolding(u.ID, "AAPL", 12)
	require.NoError(t, err)

	hh, err := s.Holdings(u.ID)
	require.NoError(t, err)
	require.Len(t, hh, 1)
	assert.Equal(t, "AAPL", hh[0].Symbol)
	assert.Equal(t, 12.0, hh[0].Shares)

	_, err = s.UpsertHolding(u.ID, "TSLA", -1)
	assert.Error(t, err, "negative shares rejected")

	require.NoError(t, s.DeleteHolding(u.ID, "AAPL"))
	hh, err = s.Holdings(u.ID)
	require.NoError(t, err)
	assert.Empty(t, hh)
}

func TestDomainHoldings(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice@example.com")
	_, err := s.UpsertHolding(u.ID, "AAPL", 2)
	require.NoError(t, err)

	hh, err := s.DomainHoldings(u.ID)
	require.NoError(t, err)
	require.Len(t, hh, 1)
	assert.Equal(t, "AAPL", hh[0].Symbol)
	assert.Equal(t, 2.0, hh[0].Shares)
}

func TestWatchlist(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice@example.com")

	_, err := s.AddWatch(u.ID, "nvda")
	require.NoError(t, err)
	// Watching twice is a no-op, not an error.
	_, err = s.AddWatch(u.ID, "NVDA")
	require.NoError(t, err)

	ww, err := s.Watchlist(u.ID)
	require.NoError(t, err)
	require.Len(t, ww, 1)
	assert.Equal(t, "NVDA", ww[0].Symbol)

	require.NoError(t, s.RemoveWatch(u.ID, "NVDA"))
	ww, err = s.Watchlist(u.ID)
	require.NoError(t, err)
	assert.Empty(t, ww)
}

func TestSaveArticleDeduplicatesOnURL(t *testing.T) {
	s := newTestStore(t)

	a1, err := s.SaveArticle(&NewsArticle{Title: "Chip rally", SourceURL: "https://news.example.com/1"})
	require.NoError(t, err)
	a2, err := s.SaveArticle(&NewsArticle{Title: "Chip rally (updated)", SourceURL: "https://news.example.com/1"})
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID, "same URL must map to the same row")

	aa, err := s.Articles("", 10)
	require.NoError(t, err)
	assert.Len(t, aa, 1)
}

func TestHighlightReplacesQuote(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice@example.com")
	a, err := s.SaveArticle(&NewsArticle{Title: "Chip rally", SourceURL: "https://news.example.com/1"})
	require.NoError(t, err)

	_, err = s.HighlightArticle(u.ID, a.ID, "first quote")
	require.NoError(t, err)
	_, err = s.HighlightArticle(u.ID, a.ID, "better quote")
	require.NoError(t, err)

	hh, err := s.Highlights(u.ID)
	require.NoError(t, err)
	require.Len(t, hh, 1)
	assert.Equal(t, "better quote", hh[0].Quote)

	_, err = s.HighlightArticle(u.ID, 999, "quote")
	assert.Error(t, err, "cannot highlight a missing article")
}

func TestFollowAndFeed(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	_, err := s.FollowUser(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = s.FollowUser(alice.ID, bob.ID)
	assert.Error(t, err, "one follow edge per pair")

	_, err = s.FollowUser(alice.ID, alice.ID)
	assert.Error(t, err, "self-follow rejected")

	following, err := s.Following(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	followers, err := s.Followers(bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)

	a, err := s.SaveArticle(&NewsArticle{Title: "Chip rally", SourceURL: "https://news.example.com/1"})
	require.NoError(t, err)
	_, err = s.RepostArticle(bob.ID, a.ID, "worth a read")
	require.NoError(t, err)
	_, err = s.RepostArticle(bob.ID, a.ID, "again")
	assert.Error(t, err, "one repost per (user, article)")

	feed, err := s.Feed(alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "worth a read", feed[0].Repost.Note)
	assert.Equal(t, bob.ID, feed[0].Author.ID)
	assert.Equal(t, a.ID, feed[0].Article.ID)

	// Bob follows nobody: his feed is empty even though reposts exist.
	feed, err = s.Feed(bob.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)

	require.NoError(t, s.Unfollow(alice.ID, bob.ID))
	feed, err = s.Feed(alice.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestOverseerLinks(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	_, err := s.CreateOverseerLink(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = s.CreateOverseerLink(alice.ID, alice.ID)
	assert.Error(t, err)

	ok, err := s.Oversees(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Oversees(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok, "overseer links are directional")

	wards, err := s.Wards(alice.ID)
	require.NoError(t, err)
	require.Len(t, wards, 1)
	assert.Equal(t, bob.ID, wards[0].ID)
}

func TestFamilyLifecycle(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	f, err := s.CreateFamily(alice.ID, "The Testers")
	require.NoError(t, err)

	mm, err := s.FamilyMembers(f.ID)
	require.NoError(t, err)
	require.Len(t, mm, 1, "owner is enrolled on creation")
	assert.Equal(t, "owner", mm[0].Role)

	inv, err := s.CreateInvite(f.ID, "bob@example.com", "tok-123", time.Hour)
	require.NoError(t, err)

	m, err := s.AcceptInvite(inv.Token, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "member", m.Role)

	_, err = s.AcceptInvite(inv.Token, bob.ID)
	assert.Error(t, err, "invites are single use")

	ff, err := s.FamiliesOf(bob.ID)
	require.NoError(t, err)
	require.Len(t, ff, 1)
	assert.Equal(t, f.ID, ff[0].ID)

	ok, err := s.IsFamilyMember(f.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExpiredInviteRejected(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	f, err := s.CreateFamily(alice.ID, "The Testers")
	require.NoError(t, err)
	inv, err := s.CreateInvite(f.ID, "bob@example.com", "tok-456", -time.Minute)
	require.NoError(t, err)

	_, err = s.AcceptInvite(inv.Token, bob.ID)
	assert.Error(t, err)
}

func TestLatestPositions(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice@example.com")

	t0 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.AddPosition(u.ID, "AAPL", 150, 200, "ftv-2026-07", t0)
	require.NoError(t, err)
	_, err = s.AddPosition(u.ID, "MSFT", 400, 500, "ftv-2026-07", t0.Add(24*time.Hour))
	require.NoError(t, err)
	_, err = s.AddPosition(u.ID, "AAPL", 180, 200, "ftv-2026-08", t0.Add(48*time.Hour))
	require.NoError(t, err)

	latest, err := s.LatestPositions(u.ID)
	require.NoError(t, err)
	require.Len(t, latest, 2, "one snapshot per symbol")

	assert.Equal(t, "AAPL", latest[0].Symbol)
	assert.Equal(t, 180.0, latest[0].Price, "newest AAPL snapshot wins")
	assert.InDelta(t, 10.0, latest[0].Discount, 0.001)
	assert.Equal(t, "MSFT", latest[1].Symbol)
	assert.InDelta(t, 20.0, latest[1].Discount, 0.001)

	_, err = s.AddPosition(u.ID, "ZERO", 10, 0, "", time.Time{})
	assert.Error(t, err, "zero target rejected")
}
