package v1

import (
	"errors"
	"net/http"
	"strconv"

	"link1t-backend/internal/delivery/http/middleware"
	"link1t-backend/internal/domain"
	"link1t-backend/internal/usecase"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/logger"
	"link1t-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// multipart framing on top of the file itself
const uploadFormOverhead = 64 << 10

type UploadHandler struct {
	assetUC domain.AssetUsecase
	limiter *security.UploadLimiter
	audit   *security.SecurityLogger
}

type UploadResponse struct {
	URL string `json:"url"`
}

// NewUploadHandler registers the upload route. Authentication is optional;
// a signed-in caller is additionally limited per user.
func NewUploadHandler(group *gin.RouterGroup, assetUC domain.AssetUsecase, limiter *security.UploadLimiter, audit *security.SecurityLogger) {
	handler := &UploadHandler{assetUC: assetUC, limiter: limiter, audit: audit}

	group.POST("/upload", handler.Upload)
}

// Upload godoc
// @Summary      Upload an asset
// @Description  Stores an image or document and returns its proxy path
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "File to upload (max 4.5MB)"
// @Param        username  formData  string  false  "Namespace hint for the storage key"
// @Success      200       {object}  UploadResponse
// @Failure      400       {object}  response.ErrorBody
// @Failure      429       {object}  response.ErrorBody
// @Failure      500       {object}  response.ErrorBody
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	caller := middleware.Caller(c)

	allowed, retryAfter, err := h.limiter.AllowUpload(ctx, c.ClientIP(), caller.UserID)
	if err != nil && !errors.Is(err, security.ErrLimiterUnavailable) {
		logger.Log.WarnContext(ctx, "upload limiter failed open", "error", err)
	}
	if !allowed {
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		h.audit.LogUploadRejected(c.ClientIP(), caller.UserID, "", "rate_limited")
		c.Error(apperror.TooManyRequests("Too many uploads. Please try again later."))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, usecase.MaxAssetSize+uploadFormOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.audit.LogUploadRejected(c.ClientIP(), caller.UserID, "", "too_large")
			c.Error(apperror.BadRequest("File too large. Maximum size is 4.5MB"))
			return
		}
		c.Error(apperror.BadRequest("No file provided"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.InternalMessage("Failed to upload file", err))
		return
	}
	defer file.Close()

	url, err := h.assetUC.Upload(ctx, &domain.AssetUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
		Namespace:   c.PostForm("username"),
	})
	if err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Status == http.StatusBadRequest {
			h.audit.LogUploadRejected(c.ClientIP(), caller.UserID, fileHeader.Filename, appErr.Message)
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{URL: url})
}
