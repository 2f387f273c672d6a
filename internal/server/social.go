package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func userID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func (s *Server) handleFollow(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid user id")
	}
	f, err := s.store.FollowUser(currentUser(c).ID, id)
	if err != nil {
		return httpError(c, http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, f)
}

func (s *Server) handleUnfollow(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid user id")
	}
	if err := s.store.Unfollow(currentUser(c).ID, id); err != nil {
		return httpError(c, http.StatusInternalServerError, "could not unfollow")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleFollowing(c echo.Context) error {
	uu, err := s.store.Following(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list following")
	}
	return c.JSON(http.StatusOK, uu)
}

func (s *Server) handleFollowers(c echo.Context) error {
	uu, err := s.store.Followers(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list followers")
	}
	return c.JSON(http.StatusOK, uu)
}

func (s *Server) handleCreateOverseer(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid user id")
	}
	// The ward grants access: the authenticated user is the ward, the id in
	// the path becomes their overseer.
	l, err := s.store.CreateOverseerLink(id, currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, l)
}

func (s *Server) handleWards(c echo.Context) error {
	uu, err := s.store.Wards(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list wards")
	}
	return c.JSON(http.StatusOK, uu)
}

// handleWardHoldings lets an overseer read a ward's positions.
func (s *Server) handleWardHoldings(c echo.Context) error {
	wardID, err := userID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid user id")
	}
	ok, err := s.store.Oversees(currentUser(c).ID, wardID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not check access")
	}
	if !ok {
		return httpError(c, http.StatusForbidden, "not an overseer of this user")
	}
	hh, err := s.store.Holdings(wardID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list holdings")
	}
	return c.JSON(http.StatusOK, hh)
}
