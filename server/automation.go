package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/existflow/clientpulse/internal/apperr"
	"github.com/existflow/clientpulse/internal/ingest"
	"github.com/labstack/echo/v4"
)

type automationRequest struct {
	LinkedInURL  string `json:"linkedinUrl"`
	UpworkURL    string `json:"upworkUrl"`
	FiverrURL    string `json:"fiverrUrl"`
	EmailContent string `json:"emailContent"`
}

func (s *Server) handleIngestLinkedIn(c echo.Context) error {
	return s.ingest(c, ingest.KindLinkedIn, "linkedinUrl", func(r automationRequest) string { return r.LinkedInURL })
}

func (s *Server) handleIngestUpwork(c echo.Context) error {
	return s.ingest(c, ingest.KindUpwork, "upworkUrl", func(r automationRequest) string { return r.UpworkURL })
}

func (s *Server) handleIngestFiverr(c echo.Context) error {
	return s.ingest(c, ingest.KindFiverr, "fiverrUrl", func(r automationRequest) string { return r.FiverrURL })
}

func (s *Server) handleIngestEmail(c echo.Context) error {
	return s.ingest(c, ingest.KindEmail, "emailContent", func(r automationRequest) string { return r.EmailContent })
}

func (s *Server) ingest(c echo.Context, kind ingest.Kind, field string, pick func(automationRequest) string) error {
	var req automationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	payload := pick(req)
	if strings.TrimSpace(payload) == "" {
		return apperr.Validation(field + " is required")
	}
	client, err := s.svc.IngestClient(c.Request().Context(), subject(c), kind, payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// handleWebhook accepts a client from an external form tool. The raw body
// goes through extraction so malformed payloads fail like any other source.
func (s *Server) handleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return apperr.Upstream("could not read webhook body", err)
	}
	client, err := s.svc.IngestClient(c.Request().Context(), s.webhookOwner, ingest.KindWebhook, string(body))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}
