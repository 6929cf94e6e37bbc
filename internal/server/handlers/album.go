package handlers

import (
	"net/http"

	"github.com/dynamicio/invites/internal/utils"
)

// maxUploadBytes caps album uploads before compression.
const maxUploadBytes = 10 << 20

// HandleAddPhoto appends a photo to the event's shared album. Uploads are
// compressed before storage; a photo too large even for the form parser
// gets the actionable "smaller image" message instead of a generic failure.
func HandleAddPhoto(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			WriteError(w, http.StatusRequestEntityTooLarge, "photo too large - try a smaller image")
			return
		}

		file, _, err := r.FormFile("photo")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "photo file is required")
			return
		}
		defer file.Close()

		dataURL, err := utils.CompressImage(file, utils.DefaultMaxImageWidth, utils.DefaultJPEGQuality)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "could not read image - try a smaller image")
			return
		}

		updated, err := s.GetStore().AddPhoto(r.PathValue("id"), dataURL)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{
			"event":  updated,
			"photos": len(updated.Photos),
		})
	}
}
