package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/streadway/amqp"

	"titanstore/initializers"
)

// OrderEvent is the message published on the orders exchange for
// downstream consumers (fulfillment, analytics).
type OrderEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublishOrderEvent is fire-and-forget: a broker failure is logged, the
// request that triggered it still succeeds.
func PublishOrderEvent(routingKey string, event OrderEvent) {
	if initializers.AmqpChannel == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Println("Failed to marshal order event:", err)
		return
	}

	err = initializers.AmqpChannel.Publish(initializers.OrdersExchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		log.Println("Failed to publish order event:", err)
	}
}

var (
	telegramBot  *tgbotapi.BotAPI
	telegramOnce sync.Once
)

// NotifyAdminNewOrder pings the shop admin chat about a fresh order.
// Disabled when no bot token is configured.
func NotifyAdminNewOrder(config *initializers.Config, orderNumber string, total float64) {
	if config.TelegramBotToken == "" || config.TelegramAdminChatID == 0 {
		return
	}

	telegramOnce.Do(func() {
		bot, err := tgbotapi.NewBotAPI(config.TelegramBotToken)
		if err != nil {
			log.Println("Failed to init telegram bot:", err)
			return
		}
		telegramBot = bot
	})
	if telegramBot == nil {
		return
	}

	text := fmt.Sprintf("New order %s for $%.2f", orderNumber, total)
	if _, err := telegramBot.Send(tgbotapi.NewMessage(config.TelegramAdminChatID, text)); err != nil {
		log.Println("Failed to send telegram notification:", err)
	}
}
