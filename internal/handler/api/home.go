package api

import (
	"net/http"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

const appName = "VideoHub"

type HomeResponse struct {
	App   string          `json:"app"`
	User  *model.Identity `json:"user"`
	Links HomeLinks       `json:"links"`
}

type HomeLinks struct {
	Upload string `json:"upload"`
}

// HomeHandler serves the landing shell, which links to the upload page.
func HomeHandler(observer port.SessionObserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(r.Context(), w, http.StatusOK, HomeResponse{
			App:   appName,
			User:  observer.CurrentUser(r.Context()),
			Links: HomeLinks{Upload: "/upload"},
		})
	}
}
