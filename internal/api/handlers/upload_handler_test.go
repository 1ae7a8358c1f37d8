package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	got []byte
}

func (f *fakeUploader) UploadImage(_ context.Context, filename string, r io.Reader, size int64) (string, error) {
	ext, err := storage.ValidateImage(filename, size, storage.DefaultMaxImageBytes)
	if err != nil {
		return "", err
	}
	f.got, _ = io.ReadAll(r)
	return "http://cdn.test/komunitech/images/abc" + ext, nil
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/uploads/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serveUpload(h *UploadHandler, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	h.UploadImage(c)
	return w
}

func TestUploadImage(t *testing.T) {
	up := &fakeUploader{}
	h := NewUploadHandler(up)

	w := serveUpload(h, multipartRequest(t, "file", "jalan.png", []byte("png-bytes")))
	require.Equal(t, http.StatusCreated, w.Code)
	var res UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "http://cdn.test/komunitech/images/abc.png", res.URL)
	assert.Equal(t, []byte("png-bytes"), up.got)
}

func TestUploadImageRejections(t *testing.T) {
	h := NewUploadHandler(&fakeUploader{})

	w := serveUpload(h, multipartRequest(t, "file", "notes.txt", []byte("text")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serveUpload(h, multipartRequest(t, "file", "kosong.png", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serveUpload(h, multipartRequest(t, "", "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file is required")
}

func TestUploadImageWithoutStorage(t *testing.T) {
	w := serveUpload(NewUploadHandler(nil), multipartRequest(t, "file", "a.png", []byte("x")))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
