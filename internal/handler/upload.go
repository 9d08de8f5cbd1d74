package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/service"
)

// multipartMemory is how much of a multipart body is held in memory before
// the rest spills to disk.
const multipartMemory = 1 << 20

// parseUploadForm parses a multipart body capped at the media size limit
// plus room for the text fields. Plain urlencoded bodies are accepted too.
func parseUploadForm(w http.ResponseWriter, r *http.Request, media *service.MediaService) error {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxBytes()+multipartMemory)

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return fmt.Errorf("%w: image exceeds %d byte limit", domain.ErrInvalidInput, media.MaxBytes())
		}
		return fmt.Errorf("%w: could not read the form", domain.ErrInvalidInput)
	}
	return nil
}

// uploadFormImage sends the optional "image" field to the media host and
// returns its URL, or "" when no file was submitted.
func uploadFormImage(r *http.Request, media *service.MediaService, folder string) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: could not read the uploaded image", domain.ErrInvalidInput)
	}
	defer file.Close()

	return media.UploadFile(r.Context(), file, header.Filename, folder)
}
