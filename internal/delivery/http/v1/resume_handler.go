package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"link1t-backend/internal/domain"
	"link1t-backend/internal/usecase"
	"link1t-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

type ParseResumeResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data" swaggertype:"object"`
}

// NewResumeHandler registers the résumé parsing route behind its own rate limit
func NewResumeHandler(group *gin.RouterGroup, resumeUC domain.ResumeUsecase, limit gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	group.POST("/parse-resume", limit, handler.Parse)
}

// Parse godoc
// @Summary      Parse a résumé
// @Description  Extracts portfolio fields from a PDF, DOC, DOCX or TXT résumé using a hosted model
// @Tags         resume
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Résumé (max 5MB)"
// @Success      200   {object}  ParseResumeResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      429   {object}  response.ErrorBody
// @Failure      500   {object}  response.ErrorBody
// @Router       /parse-resume [post]
func (h *ResumeHandler) Parse(c *gin.Context) {
	file, err := readResume(c)
	if err != nil {
		c.Error(err)
		return
	}

	data, err := h.resumeUC.Parse(c.Request.Context(), file)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ParseResumeResponse{Success: true, Data: data})
}

// readResume pulls the multipart "file" field into memory. A missing field
// yields a nil file so the usecase reports it in its usual order.
func readResume(c *gin.Context) (*domain.ResumeFile, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, usecase.MaxResumeSize+uploadFormOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperror.BadRequest("File too large. Maximum size is 5MB")
		}
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, usecase.MaxResumeSize+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ResumeFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
