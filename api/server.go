// Package api serves the shop books over a local REST API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// PriceFeed provides the live market price.
type PriceFeed interface {
	Latest() (goldbook.MarketData, bool)
	Refresh(ctx context.Context) (goldbook.MarketData, error)
}

// Server is the REST API.
type Server struct {
	store  *store.Store
	prices PriceFeed
	log    logrus.FieldLogger
	now    func() time.Time
	echo   *echo.Echo
}

// Response is the envelope of successful responses.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope of failed responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
}

// New returns the API of s. prices may be nil when live prices are off.
func New(s *store.Store, prices PriceFeed, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	srv := &Server{store: s, prices: prices, log: log, now: time.Now, echo: echo.New()}
	srv.echo.HideBanner = true
	srv.echo.HTTPErrorHandler = srv.handleError
	srv.routes()
	return srv
}

// Handler returns the HTTP handler.
func (srv *Server) Handler() http.Handler { return srv.echo }

// Start serves on addr until Shutdown.
func (srv *Server) Start(addr string) error {
	srv.log.WithField("addr", addr).Info("api listening")
	err := srv.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (srv *Server) Shutdown(ctx context.Context) error { return srv.echo.Shutdown(ctx) }

func (srv *Server) routes() {
	e := srv.echo
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			srv.log.WithFields(logrus.Fields{"method": v.Method, "uri": v.URI, "status": v.Status}).Debug("request")
			return nil
		},
	}))

	g := e.Group("/api", middleware.BasicAuth(srv.authenticate))
	g.GET("/me", srv.me)
	g.GET("/prices", srv.getPrices)
	g.POST("/prices/refresh", srv.refreshPrices)
	g.GET("/dashboard", srv.dashboard)
	g.GET("/transactions", srv.listTransactions)
	g.POST("/transactions", srv.addTransaction)
	g.GET("/transactions/:id", srv.getTransaction)
	g.GET("/transactions/:id/print", srv.printTransaction)
	g.GET("/calc", srv.calc)
	g.GET("/employees", srv.listEmployees)

	a := g.Group("", srv.adminOnly)
	a.GET("/settings", srv.getSettings)
	a.PUT("/settings", srv.putSettings)
	a.GET("/reports", srv.report)
	a.GET("/reports/csv", srv.reportCSV)
	a.GET("/reports/print", srv.printReport)
	a.GET("/profit", srv.profit)
	a.GET("/partners", srv.listPartners)
	a.POST("/partners", srv.addPartner)
	a.PUT("/partners/:id", srv.updatePartner)
	a.DELETE("/partners/:id", srv.deletePartner)
	a.GET("/partners/shares", srv.partnerShares)
	a.POST("/employees", srv.addEmployee)
	a.PUT("/employees/:id", srv.updateEmployee)
	a.DELETE("/employees/:id", srv.deleteEmployee)
	a.GET("/permissions", srv.listPermissions)
	a.POST("/permissions", srv.addPermission)
	a.POST("/permissions/:id/toggle", srv.togglePermission)
	a.DELETE("/permissions/:id", srv.deletePermission)
	a.GET("/permissions/:id/print", srv.printPermission)
	a.GET("/users", srv.listUsers)
	a.POST("/users", srv.addUser)
	a.PUT("/users/:id", srv.updateUser)
	a.DELETE("/users/:id", srv.deleteUser)
	a.DELETE("/transactions", srv.clearTransactions)
	a.GET("/backup", srv.exportBackup)
	a.POST("/backup", srv.importBackup)
}

const userKey = "user"

func (srv *Server) authenticate(username, password string, c echo.Context) (bool, error) {
	u, err := srv.store.Users().Authenticate(c.Request().Context(), username, password)
	if errors.Is(err, goldbook.ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	c.Set(userKey, u)
	return true, nil
}

func (srv *Server) adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if u, ok := c.Get(userKey).(goldbook.User); !ok || !u.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}

// handleError maps errors to status codes.
func (srv *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		msg = http.StatusText(code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	case errors.Is(err, goldbook.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, goldbook.ErrInvalid):
		code = http.StatusBadRequest
	case errors.Is(err, goldbook.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, goldbook.ErrNoData):
		code = http.StatusNotFound
	case errors.Is(err, goldbook.ErrNoPrice):
		code = http.StatusServiceUnavailable
	}
	if code >= http.StatusInternalServerError {
		srv.log.WithError(err).WithField("uri", c.Request().RequestURI).Error("request failed")
	}
	if err := c.JSON(code, ErrorResponse{Error: msg, Code: code}); err != nil {
		srv.log.WithError(err).Warn("cannot write error response")
	}
}

func ok(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{Success: true, Message: message, Data: data})
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
