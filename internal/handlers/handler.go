package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/latestcomment/headline-bias-game/internal/models"
	"github.com/latestcomment/headline-bias-game/internal/services"
)

type Handler struct {
	Game           *services.GameService
	ReleaseVersion string
}

func NewHandler(game *services.GameService, version string) *Handler {
	return &Handler{Game: game, ReleaseVersion: version}
}

type labelView struct {
	Label       models.BiasLabel
	Explanation string
}

func (h *Handler) IndexPage(c *fiber.Ctx) error {
	labels := make([]labelView, 0, len(models.CanonicalOrder))
	for _, label := range models.CanonicalOrder {
		labels = append(labels, labelView{Label: label, Explanation: models.Explanations[label]})
	}
	return c.Render("index", fiber.Map{
		"Labels":    labels,
		"MaxRounds": models.MaxRounds,
		"MaxScore":  models.MaxScore,
	})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"sessions": h.Game.Registry.Len(),
	})
}

func (h *Handler) Version(c *fiber.Ctx) error {
	return c.SendString("headline-bias-game v" + h.ReleaseVersion + "\n")
}

func (h *Handler) StartGame(c *fiber.Ctx) error {
	return c.JSON(h.Game.Start())
}

func (h *Handler) Round(c *fiber.Ctx) error {
	resp, err := h.Game.RequestRound(c.UserContext(), c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *Handler) Answer(c *fiber.Ctx) error {
	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.SessionToken) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_token is required")
	}

	resp, err := h.Game.SubmitAnswer(req.SessionToken, req.Order)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *Handler) Finish(c *fiber.Ctx) error {
	resp, err := h.Game.Finish(c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
