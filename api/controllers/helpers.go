package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/api/middleware"
	"github.com/freshmart-id/freshmart-backend/internal/orders"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
)

func actorFromRequest(r *http.Request) (orders.Actor, error) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return orders.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return orders.Actor{
		UserID:  claims.UserID,
		StoreID: claims.StoreID,
		Role:    claims.Role,
	}, nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
	}
	return id, nil
}
