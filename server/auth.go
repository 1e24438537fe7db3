package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleSignup registers a user and returns a credential
func (s *Server) handleSignup(c echo.Context) error {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sess, err := s.accounts.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// handleLogin checks credentials and returns a credential
func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sess, err := s.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// handleMe returns the authenticated subject
func (s *Server) handleMe(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"subject": subject(c)})
}
