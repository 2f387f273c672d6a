package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/finview/finview/internal/store"
	"github.com/labstack/echo/v4"
)

const userKey = "user"

// requireSession resolves the session cookie to a user, or rejects with 401.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(s.cfg.CookieName)
		if err != nil || cookie.Value == "" {
			return httpError(c, http.StatusUnauthorized, "not logged in")
		}
		u, err := s.store.SessionUser(cookie.Value)
		if err != nil {
			return httpError(c, http.StatusUnauthorized, "session expired")
		}
		c.Set(userKey, u)
		return next(c)
	}
}

// currentUser returns the user requireSession resolved.
func currentUser(c echo.Context) *store.User {
	u, _ := c.Get(userKey).(*store.User)
	return u
}

type credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return httpError(c, http.StatusBadRequest, "invalid payload")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return httpError(c, http.StatusBadRequest, "email and password are required")
	}
	if len(req.Password) < 8 {
		return httpError(c, http.StatusBadRequest, "password must be at least 8 characters")
	}

	u, err := s.store.CreateUser(req.Email, req.Password, req.DisplayName)
	if err != nil {
		return httpError(c, http.StatusConflict, "email already registered")
	}
	return s.openSession(c, u)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return httpError(c, http.StatusBadRequest, "invalid payload")
	}
	u, err := s.store.Authenticate(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		if errors.Is(err, store.ErrBadCredentials) {
			return httpError(c, http.StatusUnauthorized, "invalid email or password")
		}
		return httpError(c, http.StatusInternalServerError, "login failed")
	}
	return s.openSession(c, u)
}

func (s *Server) openSession(c echo.Context, u *store.User) error {
	ttl := time.Duration(s.cfg.SessionDays) * 24 * time.Hour
	sess, err := s.store.CreateSession(u.ID, ttl)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not open session")
	}
	c.SetCookie(&http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, u)
}

func (s *Server) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(s.cfg.CookieName); err == nil {
		_ = s.store.DeleteSession(cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleMe(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}
