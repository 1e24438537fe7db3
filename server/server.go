package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/existflow/clientpulse/internal/auth"
	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ShutdownTimeout bounds the drain of in-flight requests
const ShutdownTimeout = 10 * time.Second

// Deps are the collaborators the server is built from
type Deps struct {
	Service  *service.Service
	Accounts *service.Accounts
	Gate     *auth.Gate
	// Health reports whether the store is reachable
	Health func(ctx context.Context) error
	// WebhookOwner owns clients created through the public webhook
	WebhookOwner string
}

// Server is the ClientPulse API server
type Server struct {
	svc          *service.Service
	accounts     *service.Accounts
	gate         *auth.Gate
	health       func(ctx context.Context) error
	webhookOwner string
	echo         *echo.Echo
}

// New creates a new server
func New(d Deps) (*Server, error) {
	if d.Gate == nil {
		return nil, auth.ErrNoSecret
	}
	if d.Service == nil || d.Accounts == nil {
		return nil, errors.New("server: service and accounts are required")
	}
	if d.WebhookOwner == "" {
		return nil, errors.New("server: webhook owner is required")
	}
	s := &Server{
		svc:          d.Service,
		accounts:     d.Accounts,
		gate:         d.Gate,
		health:       d.Health,
		webhookOwner: d.WebhookOwner,
	}
	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger)
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	// Health check
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")

	// Auth endpoints (public)
	api.POST("/signup", s.handleSignup)
	api.POST("/login", s.handleLogin)

	// Untrusted; validated like any other client input
	api.POST("/webhook/client", s.handleWebhook)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)

	protected.GET("/clients", s.handleListClients)
	protected.POST("/clients", s.handleCreateClient)
	protected.DELETE("/clients/:id", s.handleDeleteClient)

	protected.GET("/invoices", s.handleListInvoices)
	protected.POST("/invoices", s.handleCreateInvoice)
	protected.PATCH("/invoices/:id/paid", s.handleMarkInvoicePaid)
	protected.DELETE("/invoices/:id", s.handleDeleteInvoice)

	protected.GET("/meetings", s.handleListMeetings)
	protected.POST("/meetings", s.handleCreateMeeting)
	protected.PATCH("/meetings/:id", s.handleUpdateMeeting)
	protected.DELETE("/meetings/:id", s.handleDeleteMeeting)

	protected.GET("/projects", s.handleListProjects)
	protected.POST("/projects", s.handleCreateProject)
	protected.GET("/projects/:id", s.handleGetProject)
	protected.PATCH("/projects/:id", s.handleUpdateProject)
	protected.DELETE("/projects/:id", s.handleDeleteProject)

	automation := protected.Group("/automation")
	automation.POST("/linkedin", s.handleIngestLinkedIn)
	automation.POST("/upwork", s.handleIngestUpwork)
	automation.POST("/fiverr", s.handleIngestFiverr)
	automation.POST("/email", s.handleIngestEmail)

	s.echo = e
}

// requestLogger logs every request once it has been served
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			// Let the error handler write the status before it is logged
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		log := requestLog(c)
		fields := []logger.Field{
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()),
		}
		if res.Status >= http.StatusInternalServerError {
			log.Warn("HTTP Request", fields...)
		} else {
			log.Info("HTTP Request", fields...)
		}
		return nil
	}
}

// requestLog returns a logger tagged with the request id
func requestLog(c echo.Context) *logger.Logger {
	return logger.WithFields(logger.F("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests for up to ShutdownTimeout
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", logger.F("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	if s.health != nil {
		if err := s.health(c.Request().Context()); err != nil {
			logger.Warn("Health check failed", logger.F("error", err.Error()))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
