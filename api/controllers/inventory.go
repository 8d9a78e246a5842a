package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/api/responses"
	"github.com/freshmart-id/freshmart-backend/api/validators"
	"github.com/freshmart-id/freshmart-backend/internal/inventory"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
)

type adjustInventoryRequest struct {
	InventoryID uuid.UUID `json:"inventory_id" validate:"required"`
	Delta       int       `json:"delta" validate:"required"`
	Note        string    `json:"note" validate:"required,min=3,max=255"`
}

// AdjustInventory applies a manual stock correction, journaled with the
// acting admin.
func AdjustInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload adjustInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.AdjustQuantity(r.Context(), inventory.AdjustInput{
			InventoryID: payload.InventoryID,
			Delta:       payload.Delta,
			ActorUserID: actor.UserID,
			Note:        payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"inventory_id": row.ID,
			"store_id":     row.StoreID,
			"product_id":   row.ProductID,
			"quantity":     row.Quantity,
		})
	}
}

// InventoryJournal pages through an inventory row's append-only audit trail.
func InventoryJournal(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inventoryID, err := uuidParam(r, "inventoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, next, err := svc.Journal(r.Context(), inventoryID, validators.PaginationFromQuery(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, entries, next)
	}
}
