package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/usecase/video"
)

const (
	fileField = "file"
	// room for the multipart envelope around a file at the size limit
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

func SelectFileHandler(svc port.FileSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		r.Body = http.MaxBytesReader(w, r.Body, video.MaxFileSize+multipartOverhead)

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				WriteError(ctx, w, http.StatusBadRequest, "Video file must be less than 50MB", err)
				return
			}
			WriteError(ctx, w, http.StatusBadRequest, "Invalid request", err)
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				logger.Warnf(ctx, "⚠️  Failed to remove multipart temp files: %v", err)
			}
		}()

		f, header, err := r.FormFile(fileField)
		if err != nil {
			WriteError(ctx, w, http.StatusBadRequest, "Please select a valid video file", err)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Warnf(ctx, "⚠️  Failed to close uploaded file: %v", err)
			}
		}()

		out, err := svc.SelectFile(ctx, port.SelectFileInput{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Size:     header.Size,
			Content:  f,
		})
		if err != nil {
			writeUseCaseError(ctx, w, err)
			return
		}

		RespondJSON(ctx, w, http.StatusOK, out)
		logger.Infof(ctx, "✅  Selected file %q (%d bytes)", out.Name, out.SizeBytes)
	}
}
