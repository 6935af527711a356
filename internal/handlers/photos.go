package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"couplesync-backend/internal/dto"
	"couplesync-backend/internal/models"
	"couplesync-backend/internal/storage"
	"couplesync-backend/internal/store"
	"couplesync-backend/internal/utils"
)

// PhotoHandler manages the photo CRUD endpoints
type PhotoHandler struct {
	photos        store.PhotoStore
	uploader      storage.Uploader
	maxUploadSize int64
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photos store.PhotoStore, uploader storage.Uploader, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{photos: photos, uploader: uploader, maxUploadSize: maxUploadSize}
}

// Photos dispatches by HTTP method for /api/fotos and /api/fotos/{id}
func (h *PhotoHandler) Photos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// No detail endpoint; only the collection is readable
		if strings.HasPrefix(r.URL.Path, "/api/fotos/") && len(r.URL.Path) > len("/api/fotos/") {
			http.NotFound(w, r)
			return
		}
		h.ListPhotos(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdatePhoto(w, r)
	case http.MethodDelete:
		h.DeletePhoto(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListPhotos handles GET /api/fotos
// @Summary List photos
// @Description List all photos, newest first
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PhotoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/fotos [get]
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.ListPhotos(r.Context())
	if err != nil {
		slog.Error("listing photos failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	resp := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		resp = append(resp, toPhotoResponse(&photos[i]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// UploadPhoto handles POST /api/upload
// @Summary Upload a photo
// @Description Upload an image file with optional description and date
// @Tags photos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param imageFile formData file true "Image file"
// @Param description formData string false "Description"
// @Param photoDate formData string false "Photo date (YYYY-MM-DD)"
// @Success 201 {object} dto.PhotoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/upload [post]
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid multipart form", "")
		return
	}

	file, header, err := r.FormFile("imageFile")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "imageFile is required", "")
		return
	}
	defer file.Close()

	var description *string
	if d := r.FormValue("description"); d != "" {
		description = &d
	}

	var photoDate *time.Time
	if d := r.FormValue("photoDate"); d != "" {
		parsed, err := utils.ParseDate(d)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "photoDate must be ISO 8601 format (YYYY-MM-DD)", "")
			return
		}
		photoDate = &parsed
	}

	// The asset goes to the object store first; the record is only written
	// once a durable URL exists, so a failed upload leaves no orphan row.
	imageURL, assetID, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		slog.Error("uploading asset failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	photo, err := h.photos.CreatePhoto(r.Context(), imageURL, description, photoDate)
	if err != nil {
		// Compensate: drop the just-uploaded asset rather than leak it.
		if delErr := h.uploader.Delete(r.Context(), assetID); delErr != nil {
			slog.Error("compensating asset delete failed", "asset_id", assetID, "error", delErr)
		}
		slog.Error("creating photo record failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, toPhotoResponse(photo))
}

// UpdatePhoto handles PUT /api/fotos/{id}
// @Summary Update photo metadata
// @Description Update the description and date of an existing photo
// @Tags photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Param request body dto.UpdatePhotoRequest true "Updated metadata"
// @Success 200 {object} dto.PhotoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/fotos/{id} [put]
func (h *PhotoHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := photoIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePhotoRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Description == "" || req.PhotoDate == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "description and photoDate are required", "")
		return
	}

	photoDate, err := utils.ParseDate(req.PhotoDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "photoDate must be ISO 8601 format (YYYY-MM-DD)", "")
		return
	}

	photo, err := h.photos.UpdatePhoto(r.Context(), id, req.Description, photoDate)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "photo not found", "")
			return
		}
		slog.Error("updating photo failed", "photo_id", id, "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toPhotoResponse(photo))
}

// DeletePhoto handles DELETE /api/fotos/{id}
// @Summary Delete a photo
// @Description Delete a photo record and best-effort delete its stored asset
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/fotos/{id} [delete]
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := photoIDFromPath(w, r)
	if !ok {
		return
	}

	// Remote asset deletion is best effort: a storage outage must not keep
	// the record alive. Delete-by-unknown-id stays a 200 (idempotent).
	photo, err := h.photos.GetPhoto(r.Context(), id)
	switch {
	case err == nil:
		if assetID, ok := storage.AssetIDFromURL(photo.ImageURL); ok {
			if delErr := h.uploader.Delete(r.Context(), assetID); delErr != nil {
				slog.Error("deleting remote asset failed", "asset_id", assetID, "error", delErr)
			}
		}
	case errors.Is(err, store.ErrNotFound):
		// nothing to clean up
	default:
		slog.Error("looking up photo failed", "photo_id", id, "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	if err := h.photos.DeletePhoto(r.Context(), id); err != nil {
		slog.Error("deleting photo failed", "photo_id", id, "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "photo deleted successfully"})
}

func photoIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/fotos/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid photo id", "")
		return 0, false
	}
	return id, true
}

func toPhotoResponse(photo *models.Photo) dto.PhotoResponse {
	var photoDate *string
	if photo.PhotoDate != nil {
		s := photo.PhotoDate.Format("2006-01-02")
		photoDate = &s
	}

	return dto.PhotoResponse{
		ID:          photo.ID,
		ImageURL:    photo.ImageURL,
		Description: photo.Description,
		PhotoDate:   photoDate,
		CreatedAt:   photo.CreatedAt.Format(time.RFC3339),
	}
}
