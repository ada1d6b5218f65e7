package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"StoryCuts/internal/config"
)

const (
	msgMethodNotAllowed = "Method Not Allowed"
	msgMissingPrompt    = "Missing prompt in request body"
)

var ErrMissingPrompt = errors.New(msgMissingPrompt)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Server turns board prompts into upstream calls and keeps the API key here.
type Server struct {
	cfg      *config.ProxyConfig
	upstream Upstream
}

// New builds the fiber app for the story proxy.
func New(cfg *config.ProxyConfig, upstream Upstream) *fiber.App {
	s := &Server{cfg: cfg, upstream: upstream}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		AppName:      "StoryCuts Proxy",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | Session: ${reqHeader:X-Session-ID}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Content-Type", "X-Session-ID"},
		AllowMethods: []string{fiber.MethodPost, fiber.MethodOptions},
	}))

	app.Get("/health/live", s.liveness)
	app.Get("/health/ready", s.readiness)
	app.All("/api/generate", s.generate)

	return app
}

func (s *Server) liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

func (s *Server) readiness(c fiber.Ctx) error {
	if s.cfg.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"reason": "GEMINI_API_KEY is not set",
		})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

func (s *Server) generate(c fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).SendString(msgMethodNotAllowed)
	}

	prompt, err := parsePrompt(c.Body())
	if err != nil {
		log.Printf("[PROXY] Rejected request: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString(msgMissingPrompt)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.UpstreamTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.upstream.Generate(ctx, prompt)
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) {
			log.Printf("[PROXY] Upstream error %d after %v", upErr.Status, time.Since(start).Round(time.Millisecond))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "AI API Error",
				"details": upErr.Body,
			})
		}
		log.Printf("[PROXY] Generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal Server Error",
			"details": err.Error(),
		})
	}

	log.Printf("[PROXY] Story generated (%d chars) in %v", len(text), time.Since(start).Round(time.Millisecond))
	return c.JSON(fiber.Map{"story": text})
}

// parsePrompt accepts a JSON body with a non-empty prompt.
func parsePrompt(body []byte) (string, error) {
	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", ErrMissingPrompt
	}
	if req.Prompt == "" {
		return "", ErrMissingPrompt
	}
	return req.Prompt, nil
}
