package models

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Client is a websocket connection playing one game session.
type Client struct {
	Id           uuid.UUID       `json:"clientid"`
	SessionToken string          `json:"session_token"`
	Conn         *websocket.Conn `json:"-"`
}
