package controllers

import (
	"errors"
	"fmt"
	"math"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"titanstore/initializers"
	"titanstore/models"
	"titanstore/utils"
)

// CreateOrder snapshots the checkout payload into an Order with immutable
// OrderItem copies, reconciles totals against the client-side figure and
// writes the initial CONFIRMED history row. The cart is cleared in the same
// transaction.
func CreateOrder(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.CreateOrderInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if len(payload.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Order must contain items",
		})
	}
	if !isFinitePositive(payload.Total) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid total amount",
		})
	}
	if payload.ShippingInfo == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Shipping information required",
		})
	}
	if errs := models.ValidateStruct(*payload.ShippingInfo); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Shipping information required",
			"errors":  errs,
		})
	}

	// Every line has to resolve before anything is written.
	orderItems := make([]models.OrderItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		productID, err := uuid.FromString(item.ProductID)
		if err != nil || !isFinitePositive(item.Price) || item.Quantity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid order items",
			})
		}

		name := item.ProductName
		if name == "" {
			name = "Unknown Product"
		}

		orderItems = append(orderItems, models.OrderItem{
			ID:           uuid.NewV4(),
			ProductID:    productID,
			ProductName:  name,
			ProductImage: item.ProductImage,
			Price:        item.Price,
			Quantity:     item.Quantity,
		})
	}

	subtotal, tax, total := models.ReconcileOrderTotals(payload.Items, payload.Total)

	order := models.Order{
		ID:              uuid.NewV4(),
		OrderNumber:     models.GenerateOrderNumber(),
		UserID:          user.ID,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           total,
		Status:          models.OrderStatusConfirmed,
		PaymentStatus:   "PAID",
		PaymentMethod:   "card",
		StripePaymentID: payload.PaymentIntentID,
		Items:           orderItems,
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if payload.SaveAddress {
			addressID, err := findOrCreateAddress(tx, user.ID, payload.ShippingInfo)
			if err != nil {
				return err
			}
			order.ShippingAddressID = &addressID
			order.BillingAddressID = &addressID
			if err := tx.Model(&order).Updates(map[string]interface{}{
				"shipping_address_id": addressID,
				"billing_address_id":  addressID,
			}).Error; err != nil {
				return err
			}
		}

		history := models.OrderStatusHistory{
			ID:      uuid.NewV4(),
			OrderID: order.ID,
			Status:  models.OrderStatusConfirmed,
			Notes:   "Order confirmed and payment received",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create order",
		})
	}

	utils.PublishOrderEvent("order.created", utils.OrderEvent{
		Event:       "OrderCreated",
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      user.ID.String(),
		Status:      order.Status,
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
	})

	config, _ := initializers.LoadConfig(".")
	utils.NotifyAdminNewOrder(&config, order.OrderNumber, order.Total)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"order": fiber.Map{
			"id":            order.ID,
			"orderNumber":   order.OrderNumber,
			"total":         order.Total,
			"status":        order.Status,
			"paymentStatus": order.PaymentStatus,
			"created_at":    order.CreatedAt,
		},
	})
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// findOrCreateAddress reuses an existing row only when every field matches
// the checkout payload exactly.
func findOrCreateAddress(tx *gorm.DB, userID uuid.UUID, info *models.ShippingInfoInput) (uuid.UUID, error) {
	var addresses []models.Address
	if err := tx.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		return uuid.Nil, err
	}

	for i := range addresses {
		if addresses[i].MatchesShippingInfo(info) {
			return addresses[i].ID, nil
		}
	}

	country := info.Country
	if country == "" {
		country = models.DefaultCountry
	}

	address := models.Address{
		ID:       uuid.NewV4(),
		UserID:   userID,
		FullName: info.FullName,
		Phone:    info.Phone,
		Street:   info.Street,
		City:     info.City,
		State:    info.State,
		ZipCode:  info.ZipCode,
		Country:  country,
	}
	if err := tx.Create(&address).Error; err != nil {
		return uuid.Nil, err
	}
	return address.ID, nil
}

func GetOrders(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var orders []models.Order
	query := initializers.DB.
		Preload("Items").
		Preload("StatusHistory").
		Where("user_id = ?", user.ID).
		Order("created_at DESC")

	if err := utils.Paginate(c, query, &orders); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch orders",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   orders,
	})
}

func GetOrderDetails(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	order, respond := loadOwnedOrder(c.Params("orderId"), "id", user)
	if respond != nil {
		return respond(c)
	}

	return respondWithOrder(c, order.ID)
}

// GetOrderByNumber is kept for the older client which tracks orders by the
// human-facing number.
func GetOrderByNumber(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	order, respond := loadOwnedOrder(c.Params("orderNumber"), "order_number", user)
	if respond != nil {
		return respond(c)
	}

	return respondWithOrder(c, order.ID)
}

// UpdateOrderStatus is the administrative override: any known status can be
// written, only enum membership is checked. The forward-only discipline
// lives in AdvanceOrderStatus.
func UpdateOrderStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.UpdateOrderStatusInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if payload.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Status is required",
		})
	}
	if !models.IsValidOrderStatus(payload.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid status",
		})
	}

	order, respond := loadOwnedOrder(c.Params("orderId"), "id", user)
	if respond != nil {
		return respond(c)
	}

	if err := applyStatusTransition(order, payload.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update order status",
		})
	}

	return respondWithOrder(c, order.ID)
}

// AdvanceOrderStatus walks the fulfillment sequence one step forward.
// A DELIVERED order is a no-op; statuses outside the sequence cannot be
// advanced.
func AdvanceOrderStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	order, respond := loadOwnedOrder(c.Params("orderId"), "id", user)
	if respond != nil {
		return respond(c)
	}

	next, ok := models.NextOrderStatus(order.Status)
	if !ok {
		if order.Status == models.OrderStatusDelivered {
			return respondWithOrder(c, order.ID)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": fmt.Sprintf("Order in status %s cannot be advanced", order.Status),
		})
	}

	if err := applyStatusTransition(order, next); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update order status",
		})
	}

	return respondWithOrder(c, order.ID)
}

func loadOwnedOrder(param string, column string, user models.UserResponse) (*models.Order, func(*fiber.Ctx) error) {
	// a malformed uuid can never match an order, answer 404 without
	// bothering the database
	if column == "id" {
		if _, err := uuid.FromString(param); err != nil {
			return nil, func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"status":  "error",
					"message": "Order not found",
				})
			}
		}
	}

	var order models.Order
	err := initializers.DB.First(&order, column+" = ?", param).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"status":  "error",
					"message": "Order not found",
				})
			}
		}
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to fetch order",
			})
		}
	}

	if order.UserID != user.ID {
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Unauthorized",
			})
		}
	}

	return &order, nil
}

// applyStatusTransition writes the new status and its history row together,
// then fans the change out to the websocket hub and the event stream.
func applyStatusTransition(order *models.Order, status string) error {
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Update("status", status).Error; err != nil {
			return err
		}

		history := models.OrderStatusHistory{
			ID:      uuid.NewV4(),
			OrderID: order.ID,
			Status:  status,
			Notes:   fmt.Sprintf("Order status updated to %s", status),
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return err
	}

	order.Status = status

	// user may simply have no open socket
	_ = utils.SendPersonalMessageToClient(order.UserID.String(), fiber.Map{
		"event":       "OrderStatusUpdated",
		"orderId":     order.ID.String(),
		"orderNumber": order.OrderNumber,
		"orderStatus": status,
	})

	utils.PublishOrderEvent("order.status", utils.OrderEvent{
		Event:       "OrderStatusUpdated",
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Status:      status,
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
	})

	return nil
}

func respondWithOrder(c *fiber.Ctx, orderID uuid.UUID) error {
	var order models.Order
	err := initializers.DB.
		Preload("Items").
		Preload("ShippingAddress").
		Preload("StatusHistory").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch order",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}
