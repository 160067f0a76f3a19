package initializers

import (
	"log"

	"github.com/streadway/amqp"
)

const OrdersExchange = "orders"

var AmqpChannel *amqp.Channel

// ConnectRabbitMQ is optional: when AMQP_URL is empty the service runs
// without the event stream and publishers become no-ops.
func ConnectRabbitMQ(config *Config) {
	if config.AmqpUrl == "" {
		log.Println("AMQP_URL not set, order events disabled")
		return
	}

	conn, err := amqp.Dial(config.AmqpUrl)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}

	AmqpChannel, err = conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a RabbitMQ channel:", err)
	}

	err = AmqpChannel.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil)
	if err != nil {
		log.Fatal("Failed to declare orders exchange:", err)
	}
}
