package server

import (
	"net/http"

	"github.com/existflow/clientpulse/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListProjects(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	projects, total, err := s.svc.ListProjects(c.Request().Context(), subject(c), page)
	if err != nil {
		return err
	}
	return listJSON(c, projects, total)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var in model.ProjectInput
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := s.svc.CreateProject(c.Request().Context(), subject(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleGetProject(c echo.Context) error {
	p, err := s.svc.GetProject(c.Request().Context(), subject(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// handleUpdateProject merges the supplied top-level fields. id, ownerId,
// createdAt and updatedAt in the body are ignored.
func (s *Server) handleUpdateProject(c echo.Context) error {
	var patch model.ProjectPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	p, err := s.svc.UpdateProject(c.Request().Context(), subject(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.svc.DeleteProject(c.Request().Context(), subject(c), c.Param("id")); err != nil {
		return err
	}
	return success(c)
}
