package api

import (
	"net/http"

	"github.com/fhuszti/videos-ms-go/internal/port"
)

const signInPage = "/auth"

type SignOutResponse struct {
	RedirectTo string `json:"redirect_to"`
}

func SignOutHandler(observer port.SessionObserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := observer.SignOut(r.Context()); err != nil {
			WriteError(r.Context(), w, http.StatusInternalServerError, "Could not sign out", err)
			return
		}
		RespondJSON(r.Context(), w, http.StatusOK, SignOutResponse{RedirectTo: signInPage})
	}
}
