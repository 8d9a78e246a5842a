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

// AdminListOrders lists a store's orders. Store admins see their own store;
// super admins pass ?store_id=.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var storeID uuid.UUID
		if raw := r.URL.Query().Get("store_id"); raw != "" {
			storeID, err = uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid store_id"))
				return
			}
		} else if actor.StoreID != nil {
			storeID = *actor.StoreID
		} else {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "store_id required"))
			return
		}

		var status *enums.OrderStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
				return
			}
			status = &parsed
		}

		page, next, err := svc.ListByStore(r.Context(), storeID, status, actor, validators.PaginationFromQuery(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, page, next)
	}
}

type shipRequest struct {
	TrackingNumber string  `json:"tracking_number" validate:"omitempty,min=3,max=64"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func ShipOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := uuidParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload shipRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Ship(r.Context(), orders.ShipInput{
			OrderID:        orderID,
			TrackingNumber: payload.TrackingNumber,
			Notes:          payload.Notes,
			Actor:          actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type verifyPaymentRequest struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func VerifyPayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := uuidParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.VerifyPaymentProof(r.Context(), orderID, actor, payload.Approve, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminCancelOrder lets a store admin cancel an order for their store.
func AdminCancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return CancelOrder(svc, logg)
}
