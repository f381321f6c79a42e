package api

import (
	"net/http"

	"github.com/fhuszti/videos-ms-go/internal/port"
)

func ClearFileHandler(svc port.FileSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearFile(r.Context()); err != nil {
			writeUseCaseError(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
