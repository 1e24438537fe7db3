package server

import (
	"github.com/labstack/echo/v4"
)

const subjectKey = "subject"

// authMiddleware resolves the Authorization header to a subject. Nothing
// downstream runs for an unauthenticated request.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		subject, err := s.gate.Authorize(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Set(subjectKey, subject)
		return next(c)
	}
}

func subject(c echo.Context) string {
	sub, _ := c.Get(subjectKey).(string)
	return sub
}
