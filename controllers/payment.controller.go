package controllers

import (
	"log"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"titanstore/initializers"
	"titanstore/models"
)

type createPaymentIntentInput struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreatePaymentIntent asks Stripe for a payment intent covering the cart
// total. The client confirms the intent itself; the backend only learns the
// outcome through the id handed back at order creation.
func CreatePaymentIntent(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload createPaymentIntentInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if payload.Amount <= 0 || math.IsInf(payload.Amount, 0) || math.IsNaN(payload.Amount) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid amount",
		})
	}

	currency := payload.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	config, _ := initializers.LoadConfig(".")
	stripe.Key = config.StripeSecretKey

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(payload.Amount * 100))),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("userId", user.ID.String())

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("Failed to create payment intent:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create payment intent",
		})
	}

	return c.JSON(fiber.Map{
		"status":          "success",
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}
