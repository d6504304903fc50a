package api

import (
	"net/http"

	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/gardaracing/charter-api/internal/utils"
)

func ContentHandler(service ports.ContentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.URL.Query().Get("slug")
		if slug == "" {
			ae := utils.NewBadRequest("slug is required")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		page, err := service.GetPage(r.Context(), slug, r.URL.Query().Get("lang"))
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, page)
	}
}
