package v1

import (
	"net/http"
	"strings"
	"time"

	"link1t-backend/internal/builder"
	"link1t-backend/internal/delivery/http/middleware"
	"link1t-backend/internal/domain"
	"link1t-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type BuilderHandler struct {
	portfolioUC domain.PortfolioUsecase
	resumeUC    domain.ResumeUsecase
	baseURL     string
}

type ValidateDraftResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type PeriodRequest struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type PeriodResponse struct {
	Period string `json:"period"`
}

type BuilderStartResponse struct {
	State     builder.State           `json:"state"`
	Portfolio *domain.PortfolioRecord `json:"portfolio,omitempty"`
	Slug      string                  `json:"slug"`
	ShareURL  string                  `json:"shareUrl,omitempty"`
}

type DraftResponse struct {
	Data *domain.PortfolioData `json:"data"`
}

// NewBuilderHandler registers the builder helper routes
func NewBuilderHandler(public, protected *gin.RouterGroup, portfolioUC domain.PortfolioUsecase, resumeUC domain.ResumeUsecase, baseURL string, resumeLimit gin.HandlerFunc) {
	handler := &BuilderHandler{portfolioUC: portfolioUC, resumeUC: resumeUC, baseURL: baseURL}

	// Public Routes
	public.POST("/builder/validate", handler.Validate)
	public.POST("/builder/period", handler.Period)

	// Protected Routes
	protected.GET("/builder/start", handler.Start)
	protected.POST("/builder/prefill", resumeLimit, handler.Prefill)
}

// Validate godoc
// @Summary      Validate a draft
// @Description  Runs the builder's submit checks and lists every violated rule
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        draft  body      domain.PortfolioData  true  "Draft portfolio"
// @Success      200    {object}  ValidateDraftResponse
// @Failure      400    {object}  response.ErrorBody
// @Router       /builder/validate [post]
func (h *BuilderHandler) Validate(c *gin.Context) {
	var draft domain.PortfolioData
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(apperror.BadRequest("Invalid portfolio data"))
		return
	}

	problems := builder.Validate(&draft)
	if problems == nil {
		problems = []string{}
	}
	c.JSON(http.StatusOK, ValidateDraftResponse{Valid: len(problems) == 0, Errors: problems})
}

// Period godoc
// @Summary      Format an experience period
// @Description  Dates accept YYYY-MM-DD, YYYY-MM or RFC 3339
// @Tags         builder
// @Accept       json
// @Produce      json
// @Param        request  body      PeriodRequest  true  "Start, end and current flag"
// @Success      200      {object}  PeriodResponse
// @Failure      400      {object}  response.ErrorBody
// @Router       /builder/period [post]
func (h *BuilderHandler) Period(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	start, err := parseOptionalDate(req.Start)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid start date"))
		return
	}
	end, err := parseOptionalDate(req.End)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid end date"))
		return
	}

	c.JSON(http.StatusOK, PeriodResponse{Period: builder.FormatPeriod(start, end, req.Current)})
}

// Start godoc
// @Summary      Start the builder
// @Description  Reports whether the caller continues an existing portfolio or picks a creation method
// @Tags         builder
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  false  "Username used as the default slug"
// @Success      200       {object}  BuilderStartResponse
// @Failure      401       {object}  response.ErrorBody
// @Router       /builder/start [get]
func (h *BuilderHandler) Start(c *gin.Context) {
	b := builder.New(h.localClient(c), builder.Options{
		Username: c.Query("username"),
		BaseURL:  h.baseURL,
	})

	state, err := b.Load(c.Request.Context())
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	resp := BuilderStartResponse{State: state, Slug: c.Query("username")}
	if rec := b.Existing(); rec != nil {
		resp.Portfolio = rec
		resp.Slug = rec.Slug
		resp.ShareURL, _ = b.ShareURL()
	}
	c.JSON(http.StatusOK, resp)
}

// Prefill godoc
// @Summary      Prefill a draft from a résumé
// @Tags         builder
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "Résumé (max 5MB)"
// @Param        username  formData  string  false  "Username used as the slug"
// @Success      200       {object}  DraftResponse
// @Failure      400       {object}  response.ErrorBody
// @Failure      401       {object}  response.ErrorBody
// @Failure      500       {object}  response.ErrorBody
// @Router       /builder/prefill [post]
func (h *BuilderHandler) Prefill(c *gin.Context) {
	file, err := readResume(c)
	if err != nil {
		c.Error(err)
		return
	}

	parsed, err := h.localClient(c).ParseResume(c.Request.Context(), file)
	if err != nil {
		c.Error(err)
		return
	}

	username := builder.DeriveUsername(c.PostForm("username"), firstName(parsed.Name))
	c.JSON(http.StatusOK, DraftResponse{Data: builder.PrefillDraft(username, parsed)})
}

func (h *BuilderHandler) localClient(c *gin.Context) *builder.LocalClient {
	return &builder.LocalClient{
		Portfolios: h.portfolioUC,
		Resumes:    h.resumeUC,
		Caller:     middleware.Caller(c),
	}
}

func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return builder.ParseDate(s)
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
