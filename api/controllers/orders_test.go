package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/api/middleware"
	internalorders "github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/pkg/auth"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

type stubOrdersService struct {
	internalorders.Service

	checkoutFn func(ctx context.Context, input internalorders.CheckoutInput) (*internalorders.OrderDTO, error)
	getFn      func(ctx context.Context, id uuid.UUID, actor internalorders.Actor) (*internalorders.OrderDTO, error)
	cancelFn   func(ctx context.Context, input internalorders.CancelInput) (*internalorders.OrderDTO, error)
}

func (s stubOrdersService) Checkout(ctx context.Context, input internalorders.CheckoutInput) (*internalorders.OrderDTO, error) {
	return s.checkoutFn(ctx, input)
}

func (s stubOrdersService) Get(ctx context.Context, id uuid.UUID, actor internalorders.Actor) (*internalorders.OrderDTO, error) {
	return s.getFn(ctx, id, actor)
}

func (s stubOrdersService) Cancel(ctx context.Context, input internalorders.CancelInput) (*internalorders.OrderDTO, error) {
	return s.cancelFn(ctx, input)
}

func withCustomerClaims(req *http.Request, userID uuid.UUID) *http.Request {
	claims := &auth.AccessTokenClaims{UserID: userID, Role: enums.UserRoleCustomer}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func withOrderID(req *http.Request, orderID uuid.UUID) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("orderId", orderID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestCheckoutCreatesOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := stubOrdersService{
		checkoutFn: func(_ context.Context, input internalorders.CheckoutInput) (*internalorders.OrderDTO, error) {
			if input.UserID != userID {
				t.Fatalf("unexpected user id %s", input.UserID)
			}
			if input.PaymentMethod != enums.PaymentMethodGateway {
				t.Fatalf("unexpected payment method %s", input.PaymentMethod)
			}
			if len(input.Items) != 1 || input.Items[0].Quantity != 2 {
				t.Fatalf("unexpected items %+v", input.Items)
			}
			return &internalorders.OrderDTO{ID: orderID, UserID: userID}, nil
		},
	}

	body := `{
		"address": {"line": "Jl. Kemang Raya 12", "lat": -6.26, "lng": 106.81},
		"shipping_method_id": "` + uuid.NewString() + `",
		"payment_method": "gateway",
		"items": [{"product_id": "` + uuid.NewString() + `", "quantity": 2}]
	}`
	req := withCustomerClaims(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), userID)
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data internalorders.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != orderID {
		t.Fatalf("unexpected order id %s", envelope.Data.ID)
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	svc := stubOrdersService{
		checkoutFn: func(context.Context, internalorders.CheckoutInput) (*internalorders.OrderDTO, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	body := `{
		"address": {"line": "Jl. Kemang Raya 12", "lat": -6.26, "lng": 106.81},
		"shipping_method_id": "` + uuid.NewString() + `",
		"payment_method": "cash_on_delivery",
		"items": [{"product_id": "` + uuid.NewString() + `", "quantity": 1}]
	}`
	req := withCustomerClaims(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutRequiresCredentials(t *testing.T) {
	svc := stubOrdersService{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestGetOrderReadsPathParam(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := stubOrdersService{
		getFn: func(_ context.Context, id uuid.UUID, actor internalorders.Actor) (*internalorders.OrderDTO, error) {
			if id != orderID {
				t.Fatalf("unexpected id %s", id)
			}
			if actor.UserID != userID {
				t.Fatalf("unexpected actor %s", actor.UserID)
			}
			return &internalorders.OrderDTO{ID: orderID, Status: enums.OrderStatusWaitingPayment}, nil
		},
	}

	req := withOrderID(withCustomerClaims(httptest.NewRequest(http.MethodGet, "/", nil), userID), orderID)
	resp := httptest.NewRecorder()
	GetOrder(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data internalorders.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.OrderStatusWaitingPayment {
		t.Fatalf("unexpected status %s", envelope.Data.Status)
	}
}

func TestCancelOrderRequiresReason(t *testing.T) {
	svc := stubOrdersService{
		cancelFn: func(context.Context, internalorders.CancelInput) (*internalorders.OrderDTO, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := withOrderID(withCustomerClaims(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), uuid.New()), uuid.New())
	resp := httptest.NewRecorder()
	CancelOrder(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}
