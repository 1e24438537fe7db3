package server

import (
	"net/http"

	"github.com/existflow/clientpulse/internal/model"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListInvoices(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	invoices, total, err := s.svc.ListInvoices(c.Request().Context(), subject(c), page)
	if err != nil {
		return err
	}
	return listJSON(c, invoices, total)
}

func (s *Server) handleCreateInvoice(c echo.Context) error {
	var in model.InvoiceInput
	if err := bind(c, &in); err != nil {
		return err
	}
	inv, err := s.svc.CreateInvoice(c.Request().Context(), subject(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

func (s *Server) handleMarkInvoicePaid(c echo.Context) error {
	inv, err := s.svc.MarkInvoicePaid(c.Request().Context(), subject(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

func (s *Server) handleDeleteInvoice(c echo.Context) error {
	if err := s.svc.DeleteInvoice(c.Request().Context(), subject(c), c.Param("id")); err != nil {
		return err
	}
	return success(c)
}
