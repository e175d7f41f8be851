package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deck-app/deck-account-backend/internal/accounts/middleware"
	"github.com/deck-app/deck-account-backend/internal/api/http/respond"
	"github.com/deck-app/deck-account-backend/internal/storage/service"
)

const defaultFolder = "userPhotos"

type Handler struct {
	storageService *service.StorageService
}

func New(storageService *service.StorageService) *Handler {
	return &Handler{storageService: storageService}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/upload", h.Upload)
}

// Upload accepts a multipart file and stores it under the caller's UID.
// The folder defaults to userPhotos when the form omits it.
func (h *Handler) Upload(c *gin.Context) {
	uid := middleware.SubjectUID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.BadRequest(c, "unable to read file")
		return
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		respond.BadRequest(c, "unable to read file")
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = defaultFolder
	}

	url, err := h.storageService.Upload(c.Request.Context(), buf,
		uid, fileHeader.Header.Get("Content-Type"), folder)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyFile), errors.Is(err, service.ErrFileTooLarge):
			respond.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrUploadFailed):
			c.JSON(http.StatusBadGateway,
				respond.Envelope{Success: false, Message: service.ErrUploadFailed.Error()})
		default:
			respond.BadRequest(c, err.Error())
		}
		return
	}

	respond.OK(c, url)
}
