package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/internal/payments"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

type stubPayments struct {
	handleFn func(ctx context.Context, event payments.GatewayEvent) (*payments.Result, error)
}

func (s stubPayments) HandleGatewayEvent(ctx context.Context, event payments.GatewayEvent) (*payments.Result, error) {
	return s.handleFn(ctx, event)
}

func TestPaymentWebhookAppliesSettlement(t *testing.T) {
	orderID := uuid.New()
	svc := stubPayments{
		handleFn: func(_ context.Context, event payments.GatewayEvent) (*payments.Result, error) {
			if event.OrderID != orderID {
				t.Fatalf("unexpected order id %s", event.OrderID)
			}
			if event.TransactionStatus != "settlement" {
				t.Fatalf("unexpected status %q", event.TransactionStatus)
			}
			return &payments.Result{Signal: enums.PaymentSignalSuccess, Applied: true}, nil
		},
	}

	body := `{
		"transaction_id": "trx-20260830-001",
		"order_id": "` + orderID.String() + `",
		"transaction_status": "settlement",
		"gross_amount_cents": 105000
	}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	PaymentWebhook(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Signal  string `json:"signal"`
			Applied bool   `json:"applied"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Signal != "success" || !envelope.Data.Applied {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
}

func TestPaymentWebhookRejectsMissingTransactionID(t *testing.T) {
	svc := stubPayments{
		handleFn: func(context.Context, payments.GatewayEvent) (*payments.Result, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	body := `{"order_id": "` + uuid.NewString() + `", "transaction_status": "settlement"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	PaymentWebhook(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
