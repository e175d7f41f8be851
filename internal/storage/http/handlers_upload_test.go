package http

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
	"github.com/deck-app/deck-account-backend/internal/accounts/middleware"
	"github.com/deck-app/deck-account-backend/internal/storage/service"
)

type fakeObjectStore struct {
	uid    string
	folder string
	size   int
	err    error
}

func (f *fakeObjectStore) Upload(_ context.Context, buf []byte, uid, _, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uid = uid
	f.folder = folder
	f.size = len(buf)
	return "https://firebasestorage.googleapis.com/v0/b/test/o/x?alt=media&token=t", nil
}

type staticVerifier struct{ uid string }

func (v staticVerifier) VerifyToken(_ context.Context, token string) (*domain.SessionClaims, error) {
	if token != "good-token" {
		return nil, domain.ErrInvalidToken
	}
	return &domain.SessionClaims{UID: v.uid}, nil
}

func newUploadRouter(store *fakeObjectStore, maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := New(service.NewStorageService(store, maxBytes))

	r := gin.New()
	rg := r.Group("/api/v1")
	rg.Use(middleware.Session(staticVerifier{uid: "uid-1"}))
	handler.Register(rg)
	return r
}

func multipartUpload(t *testing.T, fields map[string]string, fileContents []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileContents != nil {
		fw, err := mw.CreateFormFile("file", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(fileContents)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func doUpload(r *gin.Engine, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpload(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		r := newUploadRouter(&fakeObjectStore{}, 0)
		body, ct := multipartUpload(t, nil, []byte("png-bytes"))
		w := doUpload(r, "", body, ct)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stores the file under the caller uid", func(t *testing.T) {
		store := &fakeObjectStore{}
		r := newUploadRouter(store, 0)

		body, ct := multipartUpload(t, nil, []byte("png-bytes"))
		w := doUpload(r, "good-token", body, ct)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "uid-1", store.uid)
		assert.Equal(t, "userPhotos", store.folder)
		assert.Equal(t, len("png-bytes"), store.size)
		assert.Contains(t, w.Body.String(), "alt=media")
	})

	t.Run("honours an explicit folder", func(t *testing.T) {
		store := &fakeObjectStore{}
		r := newUploadRouter(store, 0)

		body, ct := multipartUpload(t, map[string]string{"folder": "coverPhotos"}, []byte("x"))
		w := doUpload(r, "good-token", body, ct)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "coverPhotos", store.folder)
	})

	t.Run("missing file part is a 400", func(t *testing.T) {
		r := newUploadRouter(&fakeObjectStore{}, 0)
		body, ct := multipartUpload(t, map[string]string{"folder": "userPhotos"}, nil)
		w := doUpload(r, "good-token", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized file is a 400", func(t *testing.T) {
		r := newUploadRouter(&fakeObjectStore{}, 4)
		body, ct := multipartUpload(t, nil, []byte("too large"))
		w := doUpload(r, "good-token", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure is a 502", func(t *testing.T) {
		store := &fakeObjectStore{err: errors.New("gcs write failed")}
		r := newUploadRouter(store, 0)

		body, ct := multipartUpload(t, nil, []byte("png-bytes"))
		w := doUpload(r, "good-token", body, ct)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
