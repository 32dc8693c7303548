package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartshoplabs/smartshop-backend/api/responses"
	"github.com/smartshoplabs/smartshop-backend/api/validators"
	messengersvc "github.com/smartshoplabs/smartshop-backend/internal/messenger"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

type sendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// MessengerContacts serves the contact roster.
func MessengerContacts(svc *messengersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messenger service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"contacts": svc.Contacts()})
	}
}

// MessengerMessages serves the conversation with one contact.
func MessengerMessages(svc *messengersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messenger service unavailable"))
			return
		}

		messages, err := svc.Messages(chi.URLParam(r, "contactId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"messages": messages})
	}
}

// MessengerSend appends an outbound message to the conversation.
func MessengerSend(svc *messengersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messenger service unavailable"))
			return
		}

		var payload sendMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		msg, err := svc.Send(chi.URLParam(r, "contactId"), payload.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, msg)
	}
}
