package v1

import (
	"bytes"
	"net/http"
	"strings"

	"link1t-backend/internal/domain"
	"link1t-backend/internal/render"
	"link1t-backend/pkg/apperror"
	"link1t-backend/pkg/logger"
	"link1t-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

type PublicHandler struct {
	portfolioUC domain.PortfolioUsecase
	renderer    *render.Renderer
}

// NewPublicHandler serves rendered portfolio pages. The bare /{slug} form is
// served as the engine's fallback so it never shadows the API routes.
func NewPublicHandler(r *gin.Engine, portfolioUC domain.PortfolioUsecase, renderer *render.Renderer) {
	handler := &PublicHandler{portfolioUC: portfolioUC, renderer: renderer}

	r.GET("/p/:slug", handler.Page)
	r.NoRoute(handler.Fallback)
}

// Page godoc
// @Summary      Public portfolio page
// @Tags         public
// @Produce      html
// @Param        slug  path  string  true  "Portfolio slug"
// @Success      200  {string}  string  "HTML page"
// @Failure      404  {string}  string  "HTML not-found page"
// @Router       /p/{slug} [get]
func (h *PublicHandler) Page(c *gin.Context) {
	h.serve(c, c.Param("slug"))
}

// Fallback renders GET /{slug} and answers everything else with a JSON 404
func (h *PublicHandler) Fallback(c *gin.Context) {
	path := strings.Trim(c.Request.URL.Path, "/")
	if (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) &&
		path != "" && !strings.Contains(path, "/") && validation.IsValidSlug(path) {
		h.serve(c, path)
		return
	}
	c.Error(apperror.NotFound("Not found"))
}

func (h *PublicHandler) serve(c *gin.Context, slug string) {
	rec, err := h.portfolioUC.GetPublic(c.Request.Context(), slug)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			h.notFound(c)
			return
		}
		c.Error(err)
		return
	}

	data := rec.Data
	if data.Slug == "" {
		data.Slug = rec.Slug
	}

	var buf bytes.Buffer
	if err := h.renderer.Portfolio(&buf, &data); err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func (h *PublicHandler) notFound(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.renderer.NotFound(&buf); err != nil {
		logger.Log.ErrorContext(c.Request.Context(), "render not found page", "error", err)
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	c.Data(http.StatusNotFound, htmlContentType, buf.Bytes())
}
