package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"ManageMyLunchAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test"

type fakePaymentOrderStore struct {
	orders        map[int64]*model.Order
	attachedCalls int
}

func newFakePaymentOrderStore(orders ...*model.Order) *fakePaymentOrderStore {
	f := &fakePaymentOrderStore{orders: map[int64]*model.Order{}}
	for _, o := range orders {
		f.orders[o.OrderID] = o
	}
	return f
}

func (f *fakePaymentOrderStore) GetOrderByID(_ context.Context, orderID int64) (*model.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, errors.New("order not found")
	}
	cp := *o
	return &cp, nil
}

func (f *fakePaymentOrderStore) GetByPaymentIntent(_ context.Context, intentID string) (*model.Order, error) {
	for _, o := range f.orders {
		if o.StripePaymentIntent != nil && *o.StripePaymentIntent == intentID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, errors.New("order not found")
}

func (f *fakePaymentOrderStore) AttachPaymentIntent(_ context.Context, orderID int64, intentID string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return errors.New("order not found or already paid")
	}
	if o.PaidAt != nil {
		return errors.New("order not found or already paid")
	}
	o.StripePaymentIntent = &intentID
	f.attachedCalls++
	return nil
}

func signedEvent(t *testing.T, eventType, intentID, orderRef string) (payload []byte, header string) {
	t.Helper()
	meta := ""
	if orderRef != "" {
		meta = fmt.Sprintf(`,"metadata":{"order_ref":%q}`, orderRef)
	}
	payload = []byte(fmt.Sprintf(`{"type":%q,"data":{"object":{"id":%q%s}}}`, eventType, intentID, meta))
	ts := "1756684800"
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	header = fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
	return payload, header
}

func openOrder(id int64) *model.Order {
	now := time.Now()
	return &model.Order{OrderID: id, UserID: 7, CreatedAt: now, UpdatedAt: now}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	f := newFakePaymentOrderStore()
	svc := NewPaymentService(nil, f)

	payload, _ := signedEvent(t, "payment_intent.succeeded", "pi_1", "")
	err := svc.HandleStripeWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	require.EqualError(t, err, "invalid signature")
}

func TestWebhookRecordsIntentOnOpenOrder(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	f := newFakePaymentOrderStore(openOrder(42))
	svc := NewPaymentService(nil, f)

	payload, header := signedEvent(t, "payment_intent.succeeded", "pi_open", "ORDER-42-5a0e8c2f")
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))

	require.NotNil(t, f.orders[42].StripePaymentIntent)
	assert.Equal(t, "pi_open", *f.orders[42].StripePaymentIntent)
	assert.Equal(t, 1, f.attachedCalls)
}

func TestWebhookDuplicateDeliveryIsIdempotent(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	f := newFakePaymentOrderStore(openOrder(42))
	svc := NewPaymentService(nil, f)

	payload, header := signedEvent(t, "payment_intent.succeeded", "pi_dup", "ORDER-42-5a0e8c2f")
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))

	assert.Equal(t, 1, f.attachedCalls)
}

func TestWebhookAcksAlreadyPaidOrder(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	paid := openOrder(42)
	now := time.Now()
	paid.PaidAt = &now
	intent := "pi_checkout"
	paid.StripePaymentIntent = &intent
	f := newFakePaymentOrderStore(paid)
	svc := NewPaymentService(nil, f)

	// redelivery of the intent the checkout already recorded
	payload, header := signedEvent(t, "payment_intent.succeeded", "pi_checkout", "ORDER-42-5a0e8c2f")
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))
	assert.Zero(t, f.attachedCalls)

	// a different intent referencing the same, already paid order
	payload, header = signedEvent(t, "payment_intent.succeeded", "pi_stray", "ORDER-42-5a0e8c2f")
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))
	assert.Zero(t, f.attachedCalls)
	assert.Equal(t, "pi_checkout", *f.orders[42].StripePaymentIntent)
}

func TestWebhookAcksUnknownIntent(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	f := newFakePaymentOrderStore(openOrder(42))
	svc := NewPaymentService(nil, f)

	// no metadata at all
	payload, header := signedEvent(t, "payment_intent.succeeded", "pi_bare", "")
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))

	// reference to an order that does not exist
	payload, header = signedEvent(t, "payment_intent.succeeded", "pi_ghost", "ORDER-999-5a0e8c2f")
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))

	assert.Zero(t, f.attachedCalls)
	assert.Nil(t, f.orders[42].StripePaymentIntent)
}

func TestWebhookPaymentFailedIsAcked(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", webhookSecret)
	f := newFakePaymentOrderStore(openOrder(42))
	svc := NewPaymentService(nil, f)

	payload, header := signedEvent(t, "payment_intent.payment_failed", "pi_fail", "ORDER-42-5a0e8c2f")
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), payload, header))
	assert.Zero(t, f.attachedCalls)
}

func TestOrderIDFromRef(t *testing.T) {
	cases := []struct {
		ref string
		id  int64
		ok  bool
	}{
		{"ORDER-42-5a0e8c2f-aa11", 42, true},
		{"ORDER-7-x", 7, true},
		{"ORDER--x", 0, false},
		{"ORDER-0-x", 0, false},
		{"ORDER-abc-x", 0, false},
		{"REFUND-42-x", 0, false},
		{"ORDER-42", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		id, ok := orderIDFromRef(tc.ref)
		assert.Equal(t, tc.ok, ok, tc.ref)
		assert.Equal(t, tc.id, id, tc.ref)
	}
}
