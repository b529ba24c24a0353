package http

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

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	gotFilename string
	gotBody     []byte
	url         string
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	f.gotFilename = filename
	f.gotBody, _ = io.ReadAll(body)
	return f.url, f.err
}

func multipartUpload(t *testing.T, router *gin.Engine, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)
	return w
}

func TestUploadController_Upload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("stores the file and returns its URL", func(t *testing.T) {
		uploader := &fakeUploader{url: "https://files.example.com/cat.png"}

		router := gin.New()
		router.POST("/upload", NewUploadController(uploader).Upload)

		w := multipartUpload(t, router, "cat.png", "image bytes")

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "https://files.example.com/cat.png", resp["file_url"])
		assert.Equal(t, "cat.png", uploader.gotFilename)
		assert.Equal(t, "image bytes", string(uploader.gotBody))
	})

	t.Run("rejects a request without a file", func(t *testing.T) {
		router := gin.New()
		router.POST("/upload", NewUploadController(&fakeUploader{}).Upload)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/upload", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps an uploader failure to 500", func(t *testing.T) {
		uploader := &fakeUploader{err: errors.New("bucket unreachable")}

		router := gin.New()
		router.POST("/upload", NewUploadController(uploader).Upload)

		w := multipartUpload(t, router, "cat.png", "image bytes")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "bucket unreachable")
	})
}
