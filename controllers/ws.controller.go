package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"titanstore/models"
	"titanstore/utils"
)

func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// OrderEventsSocket keeps one socket per signed-in user; the order
// controllers push OrderStatusUpdated events through the hub. Inbound
// frames are drained and ignored.
var OrderEventsSocket = websocket.New(func(conn *websocket.Conn) {
	user, ok := conn.Locals("user").(models.UserResponse)
	if !ok {
		conn.Close()
		return
	}

	userID := user.ID.String()
	utils.RegisterClient(userID, conn)
	defer utils.UnregisterClient(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
})
