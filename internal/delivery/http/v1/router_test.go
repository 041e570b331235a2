package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"link1t-backend/config"
	v1 "link1t-backend/internal/delivery/http/v1"
	"link1t-backend/internal/domain"
	"link1t-backend/internal/render"
	"link1t-backend/internal/repository/memory"
	"link1t-backend/internal/repository/objectstore"
	"link1t-backend/internal/usecase"
	"link1t-backend/pkg/auth"
	"link1t-backend/pkg/email"
	"link1t-backend/pkg/security"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type stubExtractor struct {
	answer string
}

func (s *stubExtractor) Configured() bool { return true }

func (s *stubExtractor) Extract(context.Context, string, string, string, []byte) (string, error) {
	return s.answer, nil
}

type testAPI struct {
	router    *gin.Engine
	repo      *memory.PortfolioRepository
	store     *objectstore.MemoryStore
	extractor *stubExtractor
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewPortfolioRepository()
	store := objectstore.NewMemoryStore()
	extractor := &stubExtractor{answer: "```json\n{\"name\": \"Ada Lovelace\", \"email\": \"ada@example.com\"}\n```"}

	cfg := &config.Config{
		GinMode:                  gin.TestMode,
		PublicBaseURL:            "https://link1t.app",
		AllowedOrigins:           []string{"http://localhost:3000"},
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 10000,
		RateLimitResumeThreshold: 10000,
	}

	router := v1.NewRouter(v1.RouterDeps{
		PortfolioUC:   usecase.NewPortfolioUsecase(repo, nil),
		AssetUC:       usecase.NewAssetUsecase(store, func() time.Time { return time.UnixMilli(1700000000123) }),
		ResumeUC:      usecase.NewResumeUsecase(extractor, nil),
		ContactUC:     usecase.NewContactUsecase(email.NewEmailService(email.Config{})),
		HealthUC:      usecase.NewHealthUsecase(repo, nil),
		Verifier:      &auth.Verifier{Secret: testSecret},
		UploadLimiter: security.NewUploadLimiter(nil, 0, 0),
		Renderer:      render.MustNew(),
		Config:        cfg,
	})

	return &testAPI{router: router, repo: repo, store: store, extractor: extractor}
}

func token(t *testing.T, userID string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (a *testAPI) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func saveBody(slug, name string) map[string]any {
	return map[string]any{
		"slug": slug,
		"data": domain.PortfolioData{
			Slug: slug,
			Hero: domain.Hero{Name: name, Email: "ada@example.com"},
		},
	}
}

func TestPortfolioRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := api.do(t, method, "/v1/portfolio", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, method)
		assert.Equal(t, "UNAUTHORIZED", decode(t, w)["code"])
	}

	w := api.do(t, http.MethodGet, "/v1/portfolio", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPortfolioLifecycle(t *testing.T) {
	api := newTestAPI(t)
	ada, grace := token(t, "user_ada"), token(t, "user_grace")

	w := api.do(t, http.MethodGet, "/v1/portfolio", ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"portfolio":null}`, w.Body.String())

	w = api.do(t, http.MethodPost, "/v1/portfolio", ada, saveBody("ada", "Ada Lovelace"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	t.Run("Second create reports the existing slug", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/v1/portfolio", ada, saveBody("ada-2", "Ada Lovelace"))
		require.Equal(t, http.StatusConflict, w.Code)
		body := decode(t, w)
		assert.Equal(t, "CONFLICT", body["code"])
		assert.Equal(t, "ada", body["existingSlug"])
	})

	t.Run("Slug owned by another identity", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/v1/portfolio", grace, saveBody("ada", "Grace Hopper"))
		require.Equal(t, http.StatusConflict, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Username already taken", body["error"])
		assert.NotContains(t, body, "existingSlug")

		w = api.do(t, http.MethodPut, "/v1/portfolio", grace, saveBody("ada", "Grace Hopper"))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing body", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/v1/portfolio", grace, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing slug or data", decode(t, w)["error"])
	})

	t.Run("Invalid slug", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/v1/portfolio", grace, saveBody("bad slug!", "Grace Hopper"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w = api.do(t, http.MethodGet, "/v1/slugs/check?slug=ada", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":true}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/v1/check-username?username=nobody", "", nil)
	assert.JSONEq(t, `{"exists":false}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/v1/slugs/check", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPut, "/v1/portfolio", ada, saveBody("ada-l", "Ada King"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/v1/portfolio", ada, nil)
	var own v1.PortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &own))
	require.NotNil(t, own.Portfolio)
	assert.Equal(t, "ada-l", own.Portfolio.Slug)
	assert.Equal(t, "Ada King", own.Portfolio.Data.Hero.Name)
	assert.False(t, own.Portfolio.UpdatedAt.Before(own.Portfolio.CreatedAt))

	w = api.do(t, http.MethodGet, "/v1/slugs/suggest?slug=ada-l", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sugg v1.SlugSuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sugg))
	assert.NotContains(t, sugg.Suggestions, "ada-l")
	assert.Len(t, sugg.Suggestions, 5)

	for i := 0; i < 2; i++ {
		w = api.do(t, http.MethodDelete, "/v1/portfolio", ada, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w = api.do(t, http.MethodGet, "/v1/portfolio", ada, nil)
	assert.JSONEq(t, `{"portfolio":null}`, w.Body.String())

	w = api.do(t, http.MethodPut, "/v1/portfolio", ada, saveBody("ada", "Ada Lovelace"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func pngFile(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, path, filename, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadAndProxy(t *testing.T) {
	api := newTestAPI(t)
	content := pngFile(t)

	req := multipartRequest(t, "/v1/upload", "my photo.png", "image/png", content, map[string]string{"username": "ada"})
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var up v1.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &up))
	assert.Equal(t, "/asset-proxy/ada/1700000000123-myphoto.png", up.URL)

	w = api.do(t, http.MethodGet, up.URL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))

	t.Run("Unknown key", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/asset-proxy/ada/missing.png", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Image not found", decode(t, w)["error"])
	})

	t.Run("Fake image", func(t *testing.T) {
		req := multipartRequest(t, "/v1/upload", "evil.png", "image/png", []byte("<?php echo 1; ?>"), nil)
		w := httptest.NewRecorder()
		api.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing file", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/v1/upload", "", map[string]string{"file": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file provided", decode(t, w)["error"])
	})
}

func TestParseResume(t *testing.T) {
	api := newTestAPI(t)

	req := multipartRequest(t, "/v1/parse-resume", "cv.pdf", "application/pdf", []byte("%PDF-1.4 resume"), nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{"name":"Ada Lovelace","email":"ada@example.com"}}`, w.Body.String())

	t.Run("Model answer is not JSON", func(t *testing.T) {
		api.extractor.answer = "Sorry, I cannot read this file."
		req := multipartRequest(t, "/v1/parse-resume", "cv.pdf", "application/pdf", []byte("%PDF-1.4 resume"), nil)
		w := httptest.NewRecorder()
		api.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Failed to parse AI response as JSON", body["error"])
		assert.NotContains(t, w.Body.String(), "Sorry")
	})

	t.Run("No file", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/v1/parse-resume", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file provided", decode(t, w)["error"])
	})
}

func TestPublicPages(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/ada", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = api.do(t, http.MethodPost, "/v1/portfolio", token(t, "user_ada"), saveBody("ada", "Ada Lovelace"))
	require.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/ada", "/p/ada"} {
		w := api.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "<title>Ada Lovelace - Portfolio</title>")
	}

	t.Run("Unknown API paths stay JSON", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/v1/nothing-here", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
	})
}

func TestBuilderHelpers(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/v1/builder/validate", "", domain.PortfolioData{Slug: "ada"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":false,"errors":["Name is required","Email is required"]}`, w.Body.String())

	w = api.do(t, http.MethodPost, "/v1/builder/validate", "", domain.PortfolioData{
		Hero: domain.Hero{Name: "Ada", Email: "ada@example.com"},
	})
	assert.JSONEq(t, `{"valid":true,"errors":[]}`, w.Body.String())

	w = api.do(t, http.MethodPost, "/v1/builder/period", "", v1.PeriodRequest{Start: "2022-01", Current: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"period":"Jan 2022 - Present"}`, w.Body.String())

	w = api.do(t, http.MethodPost, "/v1/builder/period", "", v1.PeriodRequest{Start: "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ada := token(t, "user_ada")
	w = api.do(t, http.MethodGet, "/v1/builder/start?username=ada", ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"method","slug":"ada"}`, w.Body.String())

	api.do(t, http.MethodPost, "/v1/portfolio", ada, saveBody("ada", "Ada Lovelace"))
	w = api.do(t, http.MethodGet, "/v1/builder/start", ada, nil)
	var start v1.BuilderStartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))
	assert.Equal(t, "existing", string(start.State))
	assert.Equal(t, "https://link1t.app/ada", start.ShareURL)

	req := multipartRequest(t, "/v1/builder/prefill", "cv.pdf", "application/pdf", []byte("%PDF-1.4"), nil)
	req.Header.Set("Authorization", "Bearer "+ada)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var draft v1.DraftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Equal(t, "ada", draft.Data.Slug)
	assert.Equal(t, "Ada Lovelace", draft.Data.Hero.Name)
	assert.Equal(t, []string{"Full Stack Developer"}, draft.Data.Hero.Subtitle)
}

func TestContactUnavailable(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/v1/contact", "", domain.ContactRequest{
		Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Contact service temporarily unavailable", decode(t, w)["error"])

	w = api.do(t, http.MethodPost, "/v1/contact", "", map[string]string{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/v1/contact", "", domain.ContactRequest{
		Name: "Ada 🚀", Email: "ada@example", Subject: "Hi", Message: "Hello",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.ElementsMatch(t, []any{
		"Name must not contain emoji or special symbols",
		"Please enter a valid email address",
	}, body["details"])
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/v1/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok","redis":"disabled"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRequestIDIsEchoedInErrors(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/portfolio", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))
	assert.True(t, strings.Contains(w.Body.String(), `"request_id":"req-123"`))
}

// lengthlessS3 answers GetObject the way some S3-compatible gateways do on
// chunked responses: a body with no Content-Length.
type lengthlessS3 struct {
	body string
}

func (f lengthlessS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, nil
}

func (f lengthlessS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(strings.NewReader(f.body)),
		ContentType: aws.String("image/png"),
	}, nil
}

func TestAssetProxyStreamsObjectsWithoutLength(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := objectstore.NewS3Store(lengthlessS3{body: "png-bytes"}, "portfolio-assets")
	v1.NewAssetHandler(r, usecase.NewAssetUsecase(store, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/asset-proxy/ada/1-me.png", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.NotEqual(t, "0", w.Header().Get("Content-Length"))
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}
