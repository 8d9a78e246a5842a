package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/api/responses"
	"github.com/freshmart-id/freshmart-backend/api/validators"
	"github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
)

type checkoutRequest struct {
	Address          checkoutAddress `json:"address" validate:"required"`
	ShippingMethodID uuid.UUID       `json:"shipping_method_id" validate:"required"`
	PaymentMethod    string          `json:"payment_method" validate:"required,oneof=gateway manual_transfer"`
	Items            []checkoutItem  `json:"items" validate:"required,min=1,dive"`
	VoucherCodes     []string        `json:"voucher_codes,omitempty" validate:"omitempty,max=3,dive,min=1"`
	Notes            *string         `json:"notes,omitempty"`
}

type checkoutAddress struct {
	Line string  `json:"line" validate:"required"`
	Lat  float64 `json:"lat" validate:"required,latitude"`
	Lng  float64 `json:"lng" validate:"required,longitude"`
}

type checkoutItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// Checkout creates an order for the authenticated customer.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
			return
		}

		input := orders.CheckoutInput{
			UserID: actor.UserID,
			Address: orders.AddressInput{
				Line: payload.Address.Line,
				Lat:  payload.Address.Lat,
				Lng:  payload.Address.Lng,
			},
			ShippingMethodID: payload.ShippingMethodID,
			PaymentMethod:    method,
			VoucherCodes:     payload.VoucherCodes,
			Notes:            payload.Notes,
		}
		for _, item := range payload.Items {
			input.Items = append(input.Items, orders.ItemInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		order, err := svc.Checkout(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
