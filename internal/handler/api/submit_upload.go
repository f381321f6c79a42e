package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/usecase/video"
	"github.com/fhuszti/videos-ms-go/internal/validation"
)

func SubmitUploadHandler(svc port.VideoUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var form video.MetadataForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			WriteError(ctx, w, http.StatusBadRequest, "Invalid request", err)
			return
		}

		form.Normalize()
		if errs := validation.ValidateStruct(form); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(ctx, w, http.StatusInternalServerError, "Validation error (could not encode details)", err)
				return
			}
			RespondRawJSON(ctx, w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(ctx, "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.SubmitUpload(ctx, form.Metadata())
		if err != nil {
			writeUseCaseError(ctx, w, err)
			return
		}

		RespondJSON(ctx, w, http.StatusCreated, out)
	}
}
