package api

import (
	"errors"
	"net/http"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/gardaracing/charter-api/internal/utils"
)

func BookingHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createBooking(service, w, r)
		case http.MethodGet:
			getBooking(service, w, r)
		case http.MethodPatch:
			setBookingStatus(service, w, r)
		}
	}
}

func createBooking(service ports.BookingService, w http.ResponseWriter, r *http.Request) {
	var form models.BookingForm
	if err := utils.JsonDecodeBody(r, &form); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}

	confirmation, err := service.BookRaceDay(r.Context(), form)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			utils.RenderResponse(r, w, http.StatusBadRequest, ve)
			return
		}
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusCreated, confirmation)
}

func getBooking(service ports.BookingService, w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		ae := utils.NewBadRequest("id is required")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}

	booking, err := service.GetBooking(r.Context(), id)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, booking)
}

type statusUpdateRequest struct {
	ID     string               `json:"id"`
	Status models.BookingStatus `json:"status"`
}

func setBookingStatus(service ports.BookingService, w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := utils.JsonDecodeBody(r, &req); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	if req.ID == "" || req.Status == "" {
		ae := utils.NewBadRequest("id and status are required")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}

	if err := service.SetBookingStatus(r.Context(), req.ID, req.Status); err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, SuccessResponse{Success: true})
}

func getApiError(err error) utils.ApiError {
	ae := utils.ApiError{Msg: err.Error()}
	switch {
	case errors.Is(err, models.ErrInvalidUUID):
		ae.StatusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrBookingNotFound):
		ae.StatusCode = http.StatusNotFound
	case errors.Is(err, models.ErrPageNotFound):
		ae.StatusCode = http.StatusNotFound
	case errors.Is(err, models.ErrClientResolution):
		// generic retry message, the underlying cause stays in the log
		ae.Msg = "Could not process your booking. Please try again."
		ae.StatusCode = http.StatusInternalServerError
	default:
		ae.StatusCode = http.StatusInternalServerError
	}
	return ae
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
