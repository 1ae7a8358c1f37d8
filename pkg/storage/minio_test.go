package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket, object, contentType string
	body                        []byte
	err                         error
}

func (f *fakePutter) PutObject(_ context.Context, bucket, object string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	f.bucket, f.object, f.contentType = bucket, object, opts.ContentType
	f.body, _ = io.ReadAll(r)
	return minio.UploadInfo{Bucket: bucket, Key: object}, nil
}

func TestValidateImage(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		size    int64
		wantExt string
		wantErr error
	}{
		{"png", "foto.png", 10, ".png", nil},
		{"upper case jpeg", "FOTO.JPEG", 10, ".jpeg", nil},
		{"webp", "a.webp", DefaultMaxImageBytes, ".webp", nil},
		{"svg rejected", "logo.svg", 10, "", ErrUnsupportedImage},
		{"no extension", "foto", 10, "", ErrUnsupportedImage},
		{"empty", "a.gif", 0, "", ErrEmptyImage},
		{"too large", "a.jpg", DefaultMaxImageBytes + 1, "", ErrImageTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, err := ValidateImage(tc.file, tc.size, DefaultMaxImageBytes)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExt, ext)
		})
	}
}

func TestUploadImage(t *testing.T) {
	putter := &fakePutter{}
	store := NewImageStore(putter, Config{Bucket: "komunitech", PublicURL: "https://cdn.example.com/"}, zerolog.Nop())

	url, err := store.UploadImage(context.Background(), "jalan.JPG", bytes.NewReader([]byte("img")), 3)
	require.NoError(t, err)

	assert.Equal(t, "komunitech", putter.bucket)
	assert.True(t, strings.HasPrefix(putter.object, "images/"))
	assert.True(t, strings.HasSuffix(putter.object, ".jpg"))
	assert.Equal(t, "image/jpeg", putter.contentType)
	assert.Equal(t, []byte("img"), putter.body)
	assert.Equal(t, "https://cdn.example.com/komunitech/"+putter.object, url)

	_, err = store.UploadImage(context.Background(), "x.exe", bytes.NewReader(nil), 3)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	putter.err = errors.New("connection refused")
	_, err = store.UploadImage(context.Background(), "x.png", bytes.NewReader([]byte("img")), 3)
	assert.Error(t, err)
}
