package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/latestcomment/headline-bias-game/internal/models"
	"github.com/latestcomment/headline-bias-game/internal/services"
)

type WebSocketHandler struct {
	Game   *services.GameService
	logger *zap.Logger
}

func NewWebSocketHandler(game *services.GameService, logger *zap.Logger) *WebSocketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketHandler{Game: game, logger: logger}
}

func (h *WebSocketHandler) WebSocketMiddleware(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := h.Game.Registry.Get(c.Params("token")); err != nil {
		return err
	}
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	defer func() {
		_ = c.Close()
	}()

	client := &models.Client{
		Id:           uuid.New(),
		SessionToken: c.Params("token"),
		Conn:         c,
	}
	h.logger.Info("websocket connected",
		zap.String("client", client.Id.String()),
		zap.String("session", client.SessionToken),
	)

	if progress, err := h.Game.Describe(client.SessionToken); err == nil {
		h.send(client, models.ServerMessage{Type: "info", Payload: progress})
	}
	h.LoopMessages(context.Background(), client)

	h.logger.Info("websocket closed",
		zap.String("client", client.Id.String()),
		zap.String("session", client.SessionToken),
	)
}

// LoopMessages plays the session until the client finishes or disconnects.
func (h *WebSocketHandler) LoopMessages(ctx context.Context, client *models.Client) {
	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(client, models.ServerMessage{Type: "error", Error: "invalid message"})
			continue
		}

		switch msg.Type {
		case "round":
			resp, err := h.Game.RequestRound(ctx, client.SessionToken)
			if !h.reply(client, msg.Type, resp, err) {
				return
			}
		case "answer":
			resp, err := h.Game.SubmitAnswer(client.SessionToken, msg.Order)
			if !h.reply(client, msg.Type, resp, err) {
				return
			}
		case "finish":
			resp, err := h.Game.Finish(client.SessionToken)
			h.reply(client, msg.Type, resp, err)
			return
		default:
			h.send(client, models.ServerMessage{Type: "error", Error: "unknown message type " + msg.Type})
		}
	}
}

// reply writes the outcome of an operation and reports whether the session
// is still usable.
func (h *WebSocketHandler) reply(client *models.Client, kind string, payload any, err error) bool {
	if err != nil {
		h.send(client, models.ServerMessage{Type: "error", Error: err.Error()})
		return !errors.Is(err, services.ErrSessionNotFound)
	}
	return h.send(client, models.ServerMessage{Type: kind, Payload: payload})
}

func (h *WebSocketHandler) send(client *models.Client, msg models.ServerMessage) bool {
	if err := client.Conn.WriteJSON(msg); err != nil {
		h.logger.Debug("websocket write failed",
			zap.String("client", client.Id.String()),
			zap.Error(err),
		)
		return false
	}
	return true
}
