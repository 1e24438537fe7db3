package server

import (
	"net/http"

	"github.com/existflow/clientpulse/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListClients(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	clients, total, err := s.svc.ListClients(c.Request().Context(), subject(c), page)
	if err != nil {
		return err
	}
	return listJSON(c, clients, total)
}

func (s *Server) handleCreateClient(c echo.Context) error {
	var in model.Client
	if err := bind(c, &in); err != nil {
		return err
	}
	client, err := s.svc.CreateClient(c.Request().Context(), subject(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleDeleteClient(c echo.Context) error {
	if err := s.svc.DeleteClient(c.Request().Context(), subject(c), c.Param("id")); err != nil {
		return err
	}
	return success(c)
}
