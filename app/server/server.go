package server

import (
	"log/slog"

	"heartflow/app/config"
	"heartflow/app/service/heartflow"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

// Server exposes the small admin surface: per-chat status and reset.
type Server struct {
	cfg          *config.Config
	heartflowSvc *heartflow.Service
	app          *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:          do.MustInvoke[*config.Config](di),
		heartflowSvc: do.MustInvoke[*heartflow.Service](di),
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
	}

	api := s.app.Group("/api")
	api.Get("/chats/:chatID/status", s.handleStatus)
	api.Post("/chats/:chatID/reset", s.handleReset)

	return s, nil
}

func (s *Server) Run() {
	if err := s.app.Listen(s.cfg.Server.Addr); err != nil {
		slog.Error("admin server stopped", "error", err)
	}
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.heartflowSvc.Status(c.Params("chatID")))
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	s.heartflowSvc.Reset(c.Params("chatID"))

	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
