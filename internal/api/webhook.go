package api

import (
	"errors"
	"net/http"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/gardaracing/charter-api/internal/utils"
)

// RealtimeWebhookHandler receives database change events of shape
// {record, schema, table, type}.
func RealtimeWebhookHandler(service ports.WebhookService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev models.ChangeEvent
		if err := utils.JsonDecodeBody(r, &ev); err != nil {
			ae := utils.NewBadRequest("Invalid webhook format")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		renderWebhookResult(w, r, service.ProcessChange(r.Context(), ev),
			"Realtime webhook processed successfully")
	}
}

// EventWebhookHandler receives application events of shape {event, payload}.
func EventWebhookHandler(service ports.WebhookService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev models.AppEvent
		if err := utils.JsonDecodeBody(r, &ev); err != nil {
			ae := utils.NewBadRequest("Invalid webhook format")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		renderWebhookResult(w, r, service.ProcessAppEvent(r.Context(), ev),
			"Webhook processed successfully")
	}
}

// StorageWebhookHandler receives file-storage events.
func StorageWebhookHandler(service ports.WebhookService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev models.StorageEvent
		if err := utils.JsonDecodeBody(r, &ev); err != nil {
			ae := utils.NewBadRequest("Invalid webhook format")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		renderWebhookResult(w, r, service.ProcessStorage(r.Context(), ev),
			"Storage webhook processed successfully")
	}
}

func renderWebhookResult(w http.ResponseWriter, r *http.Request, err error, okMessage string) {
	if err != nil {
		if errors.Is(err, models.ErrInvalidWebhook) {
			ae := utils.NewBadRequest("Invalid webhook format")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		ae := utils.NewInternalServerError("Internal Server Error")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, SuccessResponse{Success: true, Message: okMessage})
}
