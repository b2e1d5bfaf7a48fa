package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	mystripe "ManageMyLunchAPI/external/stripe"
	"ManageMyLunchAPI/internal/model"

	"github.com/google/uuid"
)

// PaymentOrderStore is the order surface webhook reconciliation needs.
type PaymentOrderStore interface {
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error)
	AttachPaymentIntent(ctx context.Context, orderID int64, intentID string) error
}

// PaymentService opens Stripe payment intents for the open cart and reconciles
// webhook events. The client confirms payment and then calls checkout with the
// intent id; the webhook is a safety net, not the finalization path.
type PaymentService struct {
	Cart   *CartService
	Orders PaymentOrderStore
}

func NewPaymentService(cart *CartService, orders PaymentOrderStore) *PaymentService {
	return &PaymentService{Cart: cart, Orders: orders}
}

// CreateIntent opens a payment intent covering the user's current cart total
// and returns its id and client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, userID int64) (intentID, clientSecret string, err error) {
	cart, err := s.Cart.Cart(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if cart.TotalItems == 0 {
		return "", "", errors.New("cart is empty")
	}

	amount := int64(math.Round(cart.TotalCost * 100))
	ref := fmt.Sprintf("ORDER-%d-%s", cart.OrderID, uuid.NewString())

	pi, err := mystripe.CreatePaymentIntent(amount, ref)
	if err != nil {
		return "", "", err
	}
	return pi.ID, pi.ClientSecret, nil
}

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleStripeWebhook verifies and processes a webhook delivery. A succeeded
// intent the client never quoted at checkout is recorded on its still-open
// order via the intent's order_ref metadata, so the money is never orphaned.
// Processing is idempotent; unknown intents are logged and acknowledged so
// Stripe stops retrying.
func (s *PaymentService) HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if !mystripe.VerifySignature(payload, sigHeader, os.Getenv("STRIPE_WEBHOOK_SECRET")) {
		return errors.New("invalid signature")
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return errors.New("invalid payload")
	}

	intentID := event.Data.Object.ID

	switch event.Type {
	case "payment_intent.succeeded":
		if _, err := s.Orders.GetByPaymentIntent(ctx, intentID); err == nil {
			// intent already recorded; duplicate delivery
			return nil
		}

		orderID, ok := orderIDFromRef(event.Data.Object.Metadata["order_ref"])
		if !ok {
			logger.Warn().Str("intent_id", intentID).Msg("succeeded intent carries no order reference")
			return nil
		}
		order, err := s.Orders.GetOrderByID(ctx, orderID)
		if err != nil {
			logger.Warn().Str("intent_id", intentID).Int64("order_id", orderID).Msg("succeeded intent references unknown order")
			return nil
		}
		if !order.IsOpen() {
			logger.Warn().Str("intent_id", intentID).Int64("order_id", orderID).Msg("order already paid under a different intent")
			return nil
		}
		if err := s.Orders.AttachPaymentIntent(ctx, order.OrderID, intentID); err != nil {
			return err
		}
		logger.Info().Str("intent_id", intentID).Int64("order_id", orderID).Msg("payment recorded ahead of checkout")
	case "payment_intent.payment_failed":
		logger.Warn().Str("intent_id", intentID).Msg("payment failed")
	}

	return nil
}

// orderIDFromRef extracts the order id from an ORDER-<id>-<uuid> reference.
func orderIDFromRef(ref string) (int64, bool) {
	parts := strings.SplitN(ref, "-", 3)
	if len(parts) != 3 || parts[0] != "ORDER" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
