package v1

import (
	"net/http"

	"link1t-backend/internal/delivery/http/middleware"
	"link1t-backend/internal/delivery/http/response"
	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
}

// PortfolioResponse wraps the caller's record; portfolio is null when none exists
type PortfolioResponse struct {
	Portfolio *domain.PortfolioRecord `json:"portfolio"`
}

type SlugExistsResponse struct {
	Exists bool `json:"exists"`
}

type SlugSuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// NewPortfolioHandler registers the portfolio CRUD and slug routes
func NewPortfolioHandler(public, protected *gin.RouterGroup, portfolioUC domain.PortfolioUsecase) {
	handler := &PortfolioHandler{portfolioUC: portfolioUC}

	// Public Routes
	public.GET("/slugs/check", handler.CheckSlug)
	public.GET("/check-username", handler.CheckSlug)
	public.GET("/slugs/suggest", handler.SuggestSlugs)

	// Protected Routes
	protected.GET("/portfolio", handler.GetOwn)
	protected.POST("/portfolio", handler.Create)
	protected.PUT("/portfolio", handler.Update)
	protected.DELETE("/portfolio", handler.Delete)
}

// GetOwn godoc
// @Summary      Get own portfolio
// @Description  Returns the portfolio owned by the caller, or null when there is none
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PortfolioResponse
// @Failure      401  {object}  response.ErrorBody
// @Router       /portfolio [get]
func (h *PortfolioHandler) GetOwn(c *gin.Context) {
	rec, err := h.portfolioUC.GetOwn(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, PortfolioResponse{Portfolio: rec})
}

// Create godoc
// @Summary      Create portfolio
// @Description  Claims a slug and stores the caller's first portfolio
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.SavePortfolioRequest  true  "Slug and portfolio document"
// @Success      200      {object}  response.SuccessBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Failure      409      {object}  response.ErrorBody
// @Router       /portfolio [post]
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req domain.SavePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing slug or data"))
		return
	}

	if err := h.portfolioUC.Create(c.Request.Context(), middleware.Caller(c), &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c)
}

// Update godoc
// @Summary      Update portfolio
// @Description  Replaces the caller's portfolio document and optionally moves it to a new slug
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.SavePortfolioRequest  true  "Slug and portfolio document"
// @Success      200      {object}  response.SuccessBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Failure      404      {object}  response.ErrorBody
// @Failure      409      {object}  response.ErrorBody
// @Router       /portfolio [put]
func (h *PortfolioHandler) Update(c *gin.Context) {
	var req domain.SavePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing slug or data"))
		return
	}

	if err := h.portfolioUC.Update(c.Request.Context(), middleware.Caller(c), &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c)
}

// Delete godoc
// @Summary      Delete portfolio
// @Description  Removes the caller's portfolio. Succeeds when there is nothing to delete.
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.SuccessBody
// @Failure      401  {object}  response.ErrorBody
// @Router       /portfolio [delete]
func (h *PortfolioHandler) Delete(c *gin.Context) {
	if err := h.portfolioUC.Delete(c.Request.Context(), middleware.Caller(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c)
}

// CheckSlug godoc
// @Summary      Check slug availability
// @Tags         slugs
// @Produce      json
// @Param        slug  query     string  true  "Slug to check"
// @Success      200   {object}  SlugExistsResponse
// @Failure      400   {object}  response.ErrorBody
// @Router       /slugs/check [get]
func (h *PortfolioHandler) CheckSlug(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		// older clients send the username parameter
		slug = c.Query("username")
	}

	exists, err := h.portfolioUC.SlugExists(c.Request.Context(), slug)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, SlugExistsResponse{Exists: exists})
}

// SuggestSlugs godoc
// @Summary      Suggest free slugs
// @Description  Returns up to five unclaimed variants of the requested slug
// @Tags         slugs
// @Produce      json
// @Param        slug  query     string  true  "Desired slug"
// @Success      200   {object}  SlugSuggestionsResponse
// @Failure      400   {object}  response.ErrorBody
// @Router       /slugs/suggest [get]
func (h *PortfolioHandler) SuggestSlugs(c *gin.Context) {
	suggestions, err := h.portfolioUC.SuggestSlugs(c.Request.Context(), c.Query("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, SlugSuggestionsResponse{Suggestions: suggestions})
}
