package api

import (
	"net/http"

	"github.com/fhuszti/videos-ms-go/internal/port"
)

func GetUploadSessionHandler(svc port.SessionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.GetSession(r.Context())
		if err != nil {
			writeUseCaseError(r.Context(), w, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(r.Context(), w, http.StatusOK, sess)
	}
}
