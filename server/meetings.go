package server

import (
	"net/http"

	"github.com/existflow/clientpulse/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListMeetings(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	meetings, total, err := s.svc.ListMeetings(c.Request().Context(), subject(c), page)
	if err != nil {
		return err
	}
	return listJSON(c, meetings, total)
}

func (s *Server) handleCreateMeeting(c echo.Context) error {
	var in model.MeetingInput
	if err := bind(c, &in); err != nil {
		return err
	}
	m, err := s.svc.CreateMeeting(c.Request().Context(), subject(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) handleUpdateMeeting(c echo.Context) error {
	var patch model.MeetingPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	m, err := s.svc.UpdateMeeting(c.Request().Context(), subject(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) handleDeleteMeeting(c echo.Context) error {
	if err := s.svc.DeleteMeeting(c.Request().Context(), subject(c), c.Param("id")); err != nil {
		return err
	}
	return success(c)
}
