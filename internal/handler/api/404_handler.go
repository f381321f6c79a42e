package api

import (
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(r.Context(), w, http.StatusNotFound, ErrorResponse{Error: "This endpoint does not exist"})
	}
}
