package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/latestcomment/headline-bias-game/internal/models"
	"github.com/latestcomment/headline-bias-game/internal/services"
)

//go:embed views/*.html
var views embed.FS

// NewApp builds a fiber app with the game views and JSON error responses.
func NewApp(logger *zap.Logger) *fiber.App {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	return app
}

// Register mounts every game route on app.
func Register(app *fiber.App, h *Handler, ws *WebSocketHandler) {
	app.Get("/", h.IndexPage)
	app.Get("/healthz", h.Health)
	app.Get("/version", h.Version)

	app.Post("/start", h.StartGame)
	app.Get("/round/:token", h.Round)
	app.Post("/answer", h.Answer)
	app.Get("/finish/:token", h.Finish)

	app.Get("/ws/:token", ws.WebSocketMiddleware, websocket.New(ws.HandleWebSocket))
}

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}
		return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
	}
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, services.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNoActiveRound),
		errors.Is(err, services.ErrInvalidOrder):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrRoundInProgress):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrGenerationTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, services.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
