package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// inviteTTL bounds how long a family invite stays redeemable.
const inviteTTL = 7 * 24 * time.Hour

type inviteClaims struct {
	FamilyID uint   `json:"fid"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Server) signInvite(familyID uint, email string) (string, error) {
	claims := inviteClaims{
		FamilyID: familyID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(inviteTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.InviteSecret))
}

func (s *Server) parseInvite(token string) (*inviteClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &inviteClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.InviteSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid invite token: %w", err)
	}
	claims, ok := parsed.Claims.(*inviteClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid invite token")
	}
	return claims, nil
}

func (s *Server) handleCreateFamily(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return httpError(c, http.StatusBadRequest, "invalid payload")
	}
	f, err := s.store.CreateFamily(currentUser(c).ID, strings.TrimSpace(req.Name))
	if err != nil {
		return httpError(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, f)
}

func (s *Server) handleListFamilies(c echo.Context) error {
	ff, err := s.store.FamiliesOf(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list families")
	}
	return c.JSON(http.StatusOK, ff)
}

func familyID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func (s *Server) handleFamilyMembers(c echo.Context) error {
	id, err := familyID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid family id")
	}
	ok, err := s.store.IsFamilyMember(id, currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not check membership")
	}
	if !ok {
		return httpError(c, http.StatusForbidden, "not a member of this family")
	}
	mm, err := s.store.FamilyMembers(id)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list members")
	}
	return c.JSON(http.StatusOK, mm)
}

func (s *Server) handleInvite(c echo.Context) error {
	id, err := familyID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid family id")
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return httpError(c, http.StatusBadRequest, "invalid payload")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return httpError(c, http.StatusBadRequest, "email is required")
	}

	ok, err := s.store.IsFamilyMember(id, currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not check membership")
	}
	if !ok {
		return httpError(c, http.StatusForbidden, "not a member of this family")
	}

	token, err := s.signInvite(id, req.Email)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not sign invite")
	}
	inv, err := s.store.CreateInvite(id, req.Email, token, inviteTTL)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not create invite")
	}

	link := "/invites/accept?token=" + token
	if s.mailer != nil {
		family, err := s.store.Family(id)
		if err == nil {
			if err := s.mailer.SendInvite(req.Email, family.Name, link); err != nil {
				// Invites remain redeemable through the returned link.
				log.Printf("invite mail to %s failed (ignored): %v", req.Email, err)
			}
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{"invite": inv, "link": link})
}

func (s *Server) handleAcceptInvite(c echo.Context) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return httpError(c, http.StatusBadRequest, "token is required")
	}
	if _, err := s.parseInvite(req.Token); err != nil {
		return httpError(c, http.StatusUnauthorized, err.Error())
	}
	m, err := s.store.AcceptInvite(req.Token, currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}
