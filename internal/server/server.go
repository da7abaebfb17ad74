// Package server exposes the intake flow over HTTP with Fiber: the chat
// endpoint, resume upload, out-of-band contact submission, and the static
// front-end.
package server

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	errx "github.com/kaleem-core/server/internal/core/error"
	"github.com/kaleem-core/server/internal/intake"
	logx "github.com/kaleem-core/server/pkg/logger"
)

// Records reads the durable mirror for the session inspection endpoint.
// The Redis mirror satisfies it.
type Records interface {
	LoadRecord(ctx context.Context, sessionID string) (map[string]string, error)
	LoadHistory(ctx context.Context, sessionID string) ([]intake.Exchange, error)
}

// Config describes the HTTP listener, populated from the environment.
type Config struct {
	Addr           string `envconfig:"SERVER_ADDR" default:":5000"`
	StaticDir      string `envconfig:"STATIC_DIR" default:"./static"`
	RequestTimeout int    `envconfig:"REQUEST_TIMEOUT" default:"60"`
	BodyLimitMB    int    `envconfig:"BODY_LIMIT_MB" default:"10"`
}

type Server struct {
	app     *fiber.App
	machine *intake.Machine
	records Records
	cfg     Config
}

// New builds the HTTP surface. records may be nil when no durable mirror is
// configured; the inspection endpoint is then not registered.
func New(cfg Config, machine *intake.Machine, records Records) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	s := &Server{app: app, machine: machine, records: records, cfg: cfg}

	app.Post("/api/chat", s.handleChat)
	app.Post("/api/upload-resume", s.handleUploadResume)
	app.Post("/api/submit-contact", s.handleSubmitContact)
	if records != nil {
		app.Get("/api/session/:user_id", s.handleSessionRecord)
	}

	app.Static("/static", cfg.StaticDir)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.StaticDir, "index.html"))
	})

	return s
}

// Listen blocks serving requests on the configured address.
func (s *Server) Listen() error {
	logx.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.RequestTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.cfg.RequestTimeout) * time.Second
}

// writeError maps AppError statuses onto the response; anything else is an
// opaque 500.
func writeError(c *fiber.Ctx, err error) error {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
	}
	logx.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errx.SystemErrorMessage})
}
