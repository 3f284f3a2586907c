package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vsinha/vendorrisk/pkg/application/dto"
	"github.com/vsinha/vendorrisk/pkg/application/services"
	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/domain/repositories"
	domain "github.com/vsinha/vendorrisk/pkg/domain/services"
	"github.com/vsinha/vendorrisk/pkg/infrastructure/metrics"
	"github.com/vsinha/vendorrisk/pkg/interfaces/cli/output"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Logger     *slog.Logger
	Service    *services.RiskService
	Repository repositories.DeliveryRepository
	CacheTTL   time.Duration // zero disables the report cache
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Service == nil {
		return errors.New("risk service is required")
	}
	if c.Repository == nil {
		return errors.New("repository is required")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative, got %s", c.CacheTTL)
	}
	return nil
}

// Server serves the dashboard page and the JSON API
type Server struct {
	cfg    Config
	router *gin.Engine
	cache  *ttlcache.Cache[string, *dto.RiskReport]
}

func NewServer(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(cfg.Logger))

	s := &Server{cfg: cfg, router: router}
	if cfg.CacheTTL > 0 {
		s.cache = ttlcache.New(
			ttlcache.WithTTL[string, *dto.RiskReport](cfg.CacheTTL),
		)
	}

	router.GET("/", s.handleDashboard)
	router.GET("/api/options", s.handleOptions)
	router.GET("/api/report", s.handleReport)
	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s, nil
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	if s.cache != nil {
		go s.cache.Start()
		defer s.cache.Stop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		s.cfg.Logger.Info("shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleDashboard serves the filter page. The form resubmits the previous
// vendor selection after a material or location change, so vendors missing
// from the new summary are dropped rather than rejected.
func (s *Server) handleDashboard(c *gin.Context) {
	report, err := s.report(c, true)
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}

	options := s.cfg.Service.Options()
	page, err := output.NewPage(report, &options)
	if err != nil {
		s.cfg.Logger.Error("failed to build dashboard charts", "error", err)
		c.String(http.StatusInternalServerError, "failed to render dashboard")
		return
	}

	var buf bytes.Buffer
	if err := output.RenderHTML(&buf, page); err != nil {
		s.cfg.Logger.Error("failed to render dashboard", "error", err)
		c.String(http.StatusInternalServerError, "failed to render dashboard")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg.Service.Options())
}

func (s *Server) handleReport(c *gin.Context) {
	report, err := s.report(c, false)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"fingerprint": strconv.FormatUint(s.cfg.Repository.Fingerprint(), 16),
	})
}

// badRequestError marks query parameters that could not be parsed
type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func statusFor(err error) int {
	var bad badRequestError
	if errors.As(err, &bad) || services.IsSelectionError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseRequest(c *gin.Context) (services.ReportRequest, error) {
	req := services.ReportRequest{
		Material: entities.MaterialID(c.Query("material")),
		Location: entities.Location(c.Query("location")),
	}

	if v := c.Query("months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			return req, badRequestError{fmt.Sprintf("invalid months: %q", v)}
		}
		// zero would otherwise select the default window
		if months < domain.MinWindowMonths || months > domain.MaxWindowMonths {
			return req, fmt.Errorf("%w: got %d, expected %d-%d",
				domain.ErrInvalidWindow, months, domain.MinWindowMonths, domain.MaxWindowMonths)
		}
		req.WindowMonths = months
	}

	for _, v := range c.QueryArray("vendor") {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.Vendors = append(req.Vendors, entities.VendorID(id))
			}
		}
	}

	return req, nil
}

// report builds the report for the request, consulting the cache first.
// Keys include the store fingerprint so a reloaded store never serves stale reports.
func (s *Server) report(c *gin.Context, skipUnknownVendors bool) (*dto.RiskReport, error) {
	req, err := parseRequest(c)
	if err != nil {
		return nil, err
	}
	req.SkipUnknownVendors = skipUnknownVendors

	key := cacheKey(s.cfg.Repository.Fingerprint(), req)
	if s.cache != nil {
		if item := s.cache.Get(key); item != nil {
			metrics.ReportCacheLookups.WithLabelValues("hit").Inc()
			return item.Value(), nil
		}
		metrics.ReportCacheLookups.WithLabelValues("miss").Inc()
	}

	report, err := s.cfg.Service.BuildReport(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, report, ttlcache.DefaultTTL)
	}
	return report, nil
}

func cacheKey(fingerprint uint64, req services.ReportRequest) string {
	vendors := make([]string, len(req.Vendors))
	for i, v := range req.Vendors {
		vendors[i] = string(v)
	}
	// quoting keeps separators inside ids from merging fields
	return fmt.Sprintf("report:%x:%q:%q:%d:%q:%t",
		fingerprint, req.Material, req.Location, req.WindowMonths, vendors, req.SkipUnknownVendors)
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
