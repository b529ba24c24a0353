package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mramadan/socialmedia/internal/storage"
)

// UploadController handles file uploads to object storage.
type UploadController struct {
	uploader storage.Uploader
}

func NewUploadController(uploader storage.Uploader) *UploadController {
	return &UploadController{uploader: uploader}
}

// Upload stores a multipart file in object storage and returns its URL.
func (uc *UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondInternalError(c, err, "open uploaded file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := uc.uploader.Upload(c.Request.Context(), header.Filename, contentType, file)
	if err != nil {
		respondInternalError(c, err, "upload file")
		return
	}

	c.IndentedJSON(http.StatusCreated, gin.H{
		"detail":   "Successfully uploaded " + header.Filename,
		"file_url": url,
	})
}
