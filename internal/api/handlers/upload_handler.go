package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/pkg/response"
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
}

type UploadHandler struct {
	store ImageUploader
}

func NewUploadHandler(store ImageUploader) *UploadHandler {
	return &UploadHandler{store: store}
}

type UploadResponse struct {
	URL string `json:"url" example:"http://localhost:9000/komunitech/images/2f1c.png"`
}

// UploadImage godoc
// @Summary Upload an image for a comment or requirement
// @Description png, jpg, jpeg, gif or webp up to 5 MB. Pass the returned url as image_url.
// @Tags uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Storage not configured"
// @Router /uploads/images [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "image storage not available"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	url, err := h.store.UploadImage(c.Request.Context(), fh.Filename, f, fh.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
