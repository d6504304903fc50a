package api

import (
	"net/http"

	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/gardaracing/charter-api/internal/utils"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	SessionID   string   `json:"session_id"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func ChatHandler(service ports.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		if req.Message == "" {
			ae := utils.NewBadRequest("message is required")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = service.NewSessionID()
		}

		reply := service.Reply(r.Context(), sessionID, req.Message)
		utils.RenderResponse(r, w, http.StatusOK, chatResponse{
			SessionID:   sessionID,
			Message:     reply.Message,
			Suggestions: reply.Suggestions,
		})
	}
}

func QuickRepliesHandler(service ports.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RenderResponse(r, w, http.StatusOK, map[string][]string{
			"quick_replies": service.QuickReplies(),
		})
	}
}
