package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"couplesync-backend/internal/dto"
	"couplesync-backend/internal/models"
	"couplesync-backend/internal/store"
)

type fakePhotoStore struct {
	photos    []models.Photo
	nextID    int64
	createErr error
	deleted   []int64
}

func (f *fakePhotoStore) CreatePhoto(ctx context.Context, imageURL string, description *string, photoDate *time.Time) (*models.Photo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	photo := models.Photo{
		ID:          f.nextID,
		ImageURL:    imageURL,
		Description: description,
		PhotoDate:   photoDate,
		CreatedAt:   time.Now(),
	}
	// newest first, matching the store's ORDER BY created_at DESC
	f.photos = append([]models.Photo{photo}, f.photos...)
	return &photo, nil
}

func (f *fakePhotoStore) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	return f.photos, nil
}

func (f *fakePhotoStore) GetPhoto(ctx context.Context, id int64) (*models.Photo, error) {
	for i := range f.photos {
		if f.photos[i].ID == id {
			return &f.photos[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePhotoStore) UpdatePhoto(ctx context.Context, id int64, description string, photoDate time.Time) (*models.Photo, error) {
	for i := range f.photos {
		if f.photos[i].ID == id {
			f.photos[i].Description = &description
			f.photos[i].PhotoDate = &photoDate
			return &f.photos[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePhotoStore) DeletePhoto(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	for i := range f.photos {
		if f.photos[i].ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUploader struct {
	uploads   int
	uploadErr error
	deleteErr error
	deletedID string
}

func (f *fakeUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	f.uploads++
	return "https://cdn.example.com/couple-sync-gallery/asset-1.jpg", "couple-sync-gallery/asset-1", nil
}

func (f *fakeUploader) Delete(ctx context.Context, assetID string) error {
	f.deletedID = assetID
	return f.deleteErr
}

func testPhotoHandler() (*PhotoHandler, *fakePhotoStore, *fakeUploader) {
	photos := &fakePhotoStore{}
	uploader := &fakeUploader{}
	return NewPhotoHandler(photos, uploader, 10<<20), photos, uploader
}

func multipartUpload(t *testing.T, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withFile {
		fw, err := mw.CreateFormFile("imageFile", "pic.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadPhoto_Success(t *testing.T) {
	t.Parallel()

	h, photos, uploader := testPhotoHandler()
	req := multipartUpload(t, map[string]string{"description": "beach day", "photoDate": "2024-06-01"}, true)
	rec := httptest.NewRecorder()
	h.UploadPhoto(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, uploader.uploads)
	require.Len(t, photos.photos, 1)

	var resp dto.PhotoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.example.com/couple-sync-gallery/asset-1.jpg", resp.ImageURL)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "beach day", *resp.Description)
	require.NotNil(t, resp.PhotoDate)
	assert.Equal(t, "2024-06-01", *resp.PhotoDate)
}

func TestUploadPhoto_MissingFile(t *testing.T) {
	t.Parallel()

	h, photos, _ := testPhotoHandler()
	req := multipartUpload(t, map[string]string{"description": "x"}, false)
	rec := httptest.NewRecorder()
	h.UploadPhoto(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, photos.photos)
}

func TestUploadPhoto_UploaderFailureLeavesNoRow(t *testing.T) {
	t.Parallel()

	h, photos, uploader := testPhotoHandler()
	uploader.uploadErr = errors.New("provider down")

	req := multipartUpload(t, nil, true)
	rec := httptest.NewRecorder()
	h.UploadPhoto(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, photos.photos)
}

func TestUploadPhoto_InsertFailureCompensatesAsset(t *testing.T) {
	t.Parallel()

	h, photos, uploader := testPhotoHandler()
	photos.createErr = errors.New("db down")

	req := multipartUpload(t, nil, true)
	rec := httptest.NewRecorder()
	h.UploadPhoto(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "couple-sync-gallery/asset-1", uploader.deletedID)
}

func TestListPhotos_NewestFirst(t *testing.T) {
	t.Parallel()

	h, photos, _ := testPhotoHandler()
	_, err := photos.CreatePhoto(context.Background(), "https://cdn.example.com/g/a.jpg", nil, nil)
	require.NoError(t, err)
	_, err = photos.CreatePhoto(context.Background(), "https://cdn.example.com/g/b.jpg", nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/fotos", nil)
	rec := httptest.NewRecorder()
	h.Photos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.PhotoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(2), resp[0].ID)
	assert.Equal(t, int64(1), resp[1].ID)
}

func TestListPhotos_Empty(t *testing.T) {
	t.Parallel()

	h, _, _ := testPhotoHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/fotos", nil)
	rec := httptest.NewRecorder()
	h.Photos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func putJSON(t *testing.T, h *PhotoHandler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Photos(rec, req)
	return rec
}

func TestUpdatePhoto_Success(t *testing.T) {
	t.Parallel()

	h, photos, _ := testPhotoHandler()
	_, err := photos.CreatePhoto(context.Background(), "https://cdn.example.com/g/a.jpg", nil, nil)
	require.NoError(t, err)

	rec := putJSON(t, h, "/api/fotos/1", dto.UpdatePhotoRequest{Description: "updated", PhotoDate: "2024-01-15"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.PhotoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Description)
	assert.Equal(t, "updated", *resp.Description)
	require.NotNil(t, resp.PhotoDate)
	assert.Equal(t, "2024-01-15", *resp.PhotoDate)
}

func TestUpdatePhoto_MissingFieldsLeaveRecordUnchanged(t *testing.T) {
	t.Parallel()

	h, photos, _ := testPhotoHandler()
	desc := "original"
	_, err := photos.CreatePhoto(context.Background(), "https://cdn.example.com/g/a.jpg", &desc, nil)
	require.NoError(t, err)

	for _, payload := range []dto.UpdatePhotoRequest{
		{Description: "", PhotoDate: "2024-01-15"},
		{Description: "new", PhotoDate: ""},
	} {
		rec := putJSON(t, h, "/api/fotos/1", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	stored, err := photos.GetPhoto(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "original", *stored.Description)
}

func TestUpdatePhoto_NotFound(t *testing.T) {
	t.Parallel()

	h, _, _ := testPhotoHandler()
	rec := putJSON(t, h, "/api/fotos/99", dto.UpdatePhotoRequest{Description: "x", PhotoDate: "2024-01-15"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func deletePhoto(h *PhotoHandler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	rec := httptest.NewRecorder()
	h.Photos(rec, req)
	return rec
}

func TestDeletePhoto_RemovesRecordAndAsset(t *testing.T) {
	t.Parallel()

	h, photos, uploader := testPhotoHandler()
	_, err := photos.CreatePhoto(context.Background(), "https://cdn.example.com/couple-sync-gallery/asset-1.jpg", nil, nil)
	require.NoError(t, err)

	rec := deletePhoto(h, "/api/fotos/1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "couple-sync-gallery/asset-1", uploader.deletedID)
	assert.Equal(t, []int64{1}, photos.deleted)
	assert.Empty(t, photos.photos)
}

func TestDeletePhoto_RemoteFailureDoesNotBlockLocalDelete(t *testing.T) {
	t.Parallel()

	h, photos, uploader := testPhotoHandler()
	uploader.deleteErr = errors.New("provider down")
	_, err := photos.CreatePhoto(context.Background(), "https://cdn.example.com/couple-sync-gallery/asset-1.jpg", nil, nil)
	require.NoError(t, err)

	rec := deletePhoto(h, "/api/fotos/1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1}, photos.deleted)
}

func TestDeletePhoto_UnknownIDIsIdempotent(t *testing.T) {
	t.Parallel()

	h, _, uploader := testPhotoHandler()
	rec := deletePhoto(h, "/api/fotos/42")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uploader.deletedID)

	var resp dto.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
}

func TestPhotos_InvalidID(t *testing.T) {
	t.Parallel()

	h, _, _ := testPhotoHandler()
	rec := deletePhoto(h, "/api/fotos/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
