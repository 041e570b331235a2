package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"link1t-backend/internal/domain"
	"link1t-backend/internal/repository/memory"
	"link1t-backend/internal/repository/objectstore"
	"link1t-backend/internal/usecase"
	"link1t-backend/pkg/ai"
	"link1t-backend/pkg/email"
	"link1t-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fixedClock() time.Time {
	return time.UnixMilli(1700000000123)
}

func TestAssetUploadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := objectstore.NewMemoryStore()
	uc := usecase.NewAssetUsecase(store, fixedClock)

	content := pngBytes(t)
	url, err := uc.Upload(ctx, &domain.AssetUpload{
		Filename:    "my photo (1).png",
		ContentType: "image/png",
		Size:        int64(len(content)),
		Body:        bytes.NewReader(content),
		Namespace:   "ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "/asset-proxy/ada/1700000000123-myphoto1.png", url)

	obj, err := uc.Fetch(ctx, strings.TrimPrefix(url, usecase.AssetProxyPrefix))
	require.NoError(t, err)
	defer obj.Body.Close()

	got, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, "image/png", obj.ContentType)
}

func TestAssetUploadSizeCeiling(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAssetUsecase(objectstore.NewMemoryStore(), fixedClock)

	t.Run("Exactly the limit is accepted", func(t *testing.T) {
		body := bytes.Repeat([]byte{'a'}, int(usecase.MaxAssetSize))
		_, err := uc.Upload(ctx, &domain.AssetUpload{
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Size:        usecase.MaxAssetSize,
			Body:        bytes.NewReader(body),
		})
		assert.NoError(t, err)
	})

	t.Run("One byte over is rejected", func(t *testing.T) {
		body := bytes.Repeat([]byte{'a'}, int(usecase.MaxAssetSize)+1)
		_, err := uc.Upload(ctx, &domain.AssetUpload{
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Size:        usecase.MaxAssetSize + 1,
			Body:        bytes.NewReader(body),
		})
		requireAppError(t, err, http.StatusBadRequest)
		assert.ErrorIs(t, err, usecase.ErrAssetTooLarge)
	})

	t.Run("Declared size lies", func(t *testing.T) {
		body := bytes.Repeat([]byte{'a'}, int(usecase.MaxAssetSize)+1)
		_, err := uc.Upload(ctx, &domain.AssetUpload{
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Size:        10,
			Body:        bytes.NewReader(body),
		})
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestAssetUploadRejectsFakeImage(t *testing.T) {
	uc := usecase.NewAssetUsecase(objectstore.NewMemoryStore(), fixedClock)
	_, err := uc.Upload(context.Background(), &domain.AssetUpload{
		Filename:    "evil.png",
		ContentType: "image/png",
		Size:        9,
		Body:        strings.NewReader("<script>"),
	})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "File is not a valid image", appErr.Message)
}

type stubScanner struct {
	result antivirus.ScanResult
	calls  int
}

func (s *stubScanner) Scan(context.Context, string, []byte) antivirus.ScanResult {
	s.calls++
	return s.result
}

func (s *stubScanner) Name() string { return "stub" }

func TestAssetUploadScanning(t *testing.T) {
	ctx := context.Background()
	upload := func() *domain.AssetUpload {
		return &domain.AssetUpload{Filename: "cv.pdf", ContentType: "application/pdf", Body: strings.NewReader("%PDF-1.4")}
	}

	t.Run("Clean files are stored", func(t *testing.T) {
		store := objectstore.NewMemoryStore()
		scanner := &stubScanner{}
		uc := usecase.NewAssetUsecase(store, fixedClock, usecase.WithScanner(scanner))
		_, err := uc.Upload(ctx, upload())
		require.NoError(t, err)
		assert.Equal(t, 1, scanner.calls)
		assert.Len(t, store.Keys(), 1)
	})

	t.Run("Infected files are rejected", func(t *testing.T) {
		store := objectstore.NewMemoryStore()
		uc := usecase.NewAssetUsecase(store, fixedClock, usecase.WithScanner(&stubScanner{
			result: antivirus.ScanResult{Infected: true, ThreatName: "Eicar-Signature"},
		}))
		_, err := uc.Upload(ctx, upload())
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.ErrorIs(t, appErr, usecase.ErrAssetInfected)
		assert.Empty(t, store.Keys())
	})

	t.Run("Scanner failure fails closed", func(t *testing.T) {
		store := objectstore.NewMemoryStore()
		uc := usecase.NewAssetUsecase(store, fixedClock, usecase.WithScanner(&stubScanner{
			result: antivirus.ScanResult{Error: errors.New("clamd: connect: refused")},
		}))
		_, err := uc.Upload(ctx, upload())
		requireAppError(t, err, http.StatusServiceUnavailable)
		assert.Empty(t, store.Keys())
	})
}

func TestAssetFetchCollapsesFailuresToNotFound(t *testing.T) {
	uc := usecase.NewAssetUsecase(objectstore.NewMemoryStore(), fixedClock)
	for _, key := range []string{"", "missing/key.png", "../etc/passwd"} {
		_, err := uc.Fetch(context.Background(), key)
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Image not found", appErr.Message)
	}
}

func TestAssetKey(t *testing.T) {
	at := time.UnixMilli(42)
	assert.Equal(t, "uploads/42-a.png", usecase.AssetKey("", "a.png", at))
	assert.Equal(t, "uploads/42-a.png", usecase.AssetKey("///", "a.png", at))
	assert.Equal(t, "ada_l/42-rsum.pdf", usecase.AssetKey("ada_l", "résumé.pdf", at))
	assert.Equal(t, "uploads/42-file", usecase.AssetKey("", "日本", at))
	assert.Equal(t, "x/42-a.b.png", usecase.AssetKey("x", "a..b.png", at))
}

type fakeExtractor struct {
	configured bool
	answer     string
	err        error

	gotPrompt string
	gotMIME   string
	calls     int
}

func (f *fakeExtractor) Configured() bool { return f.configured }

func (f *fakeExtractor) Extract(_ context.Context, prompt, _ string, mimeType string, _ []byte) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	f.gotMIME = mimeType
	return f.answer, f.err
}

func pdfFile() *domain.ResumeFile {
	return &domain.ResumeFile{Filename: "cv.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.7 ...")}
}

func TestResumeParseFences(t *testing.T) {
	inner := `{"name":"Ada Lovelace","skills":["math"]}`
	for name, answer := range map[string]string{
		"json fence":  "```json\n" + inner + "\n```",
		"plain fence": "```\n" + inner + "\n```",
		"no fence":    "  " + inner + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			ex := &fakeExtractor{configured: true, answer: answer}
			uc := usecase.NewResumeUsecase(ex, nil)

			raw, err := uc.Parse(context.Background(), pdfFile())
			require.NoError(t, err)
			assert.JSONEq(t, inner, string(raw))
			assert.Contains(t, ex.gotPrompt, "You are an expert resume parser")
			assert.Equal(t, "application/pdf", ex.gotMIME)

			var parsed domain.ParsedResumeData
			require.NoError(t, json.Unmarshal(raw, &parsed))
			assert.Equal(t, "Ada Lovelace", parsed.Name)
		})
	}
}

func TestResumeParseFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("Not configured fails before any processing", func(t *testing.T) {
		ex := &fakeExtractor{}
		_, err := usecase.NewResumeUsecase(ex, nil).Parse(ctx, nil)
		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Equal(t, "OpenRouter API key not configured", appErr.Message)
		assert.Zero(t, ex.calls)
	})

	t.Run("No file", func(t *testing.T) {
		_, err := usecase.NewResumeUsecase(&fakeExtractor{configured: true}, nil).Parse(ctx, &domain.ResumeFile{Filename: "cv.pdf"})
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Too large", func(t *testing.T) {
		f := pdfFile()
		f.Content = append(f.Content, make([]byte, usecase.MaxResumeSize)...)
		_, err := usecase.NewResumeUsecase(&fakeExtractor{configured: true}, nil).Parse(ctx, f)
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Not JSON", func(t *testing.T) {
		ex := &fakeExtractor{configured: true, answer: "Sorry, I cannot read this file."}
		_, err := usecase.NewResumeUsecase(ex, nil).Parse(ctx, pdfFile())
		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to parse AI response as JSON", appErr.Message)
		assert.NotContains(t, appErr.Message, "Sorry")
	})

	t.Run("Empty answer", func(t *testing.T) {
		ex := &fakeExtractor{configured: true, answer: "  "}
		_, err := usecase.NewResumeUsecase(ex, nil).Parse(ctx, pdfFile())
		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Equal(t, "No response from AI model", appErr.Message)
	})

	t.Run("Upstream status is forwarded", func(t *testing.T) {
		ex := &fakeExtractor{configured: true, err: &ai.UpstreamError{Status: http.StatusPaymentRequired, Message: "Insufficient credits"}}
		_, err := usecase.NewResumeUsecase(ex, nil).Parse(ctx, pdfFile())
		appErr := requireAppError(t, err, http.StatusPaymentRequired)
		assert.Equal(t, "Insufficient credits", appErr.Message)
	})

	t.Run("Upstream without message", func(t *testing.T) {
		ex := &fakeExtractor{configured: true, err: &ai.UpstreamError{Status: http.StatusBadGateway}}
		_, err := usecase.NewResumeUsecase(ex, nil).Parse(ctx, pdfFile())
		appErr := requireAppError(t, err, http.StatusBadGateway)
		assert.Equal(t, "Failed to parse resume", appErr.Message)
	})

	t.Run("Transport failure", func(t *testing.T) {
		ex := &fakeExtractor{configured: true, err: errors.New("dial tcp: timeout")}
		_, err := usecase.NewResumeUsecase(ex, nil).Parse(ctx, pdfFile())
		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to process resume", appErr.Message)
	})

	t.Run("Content does not match extension", func(t *testing.T) {
		f := &domain.ResumeFile{Filename: "cv.pdf", Content: []byte("hello")}
		ex := &fakeExtractor{configured: true}
		_, err := usecase.NewResumeUsecase(ex, nil).Parse(ctx, f)
		requireAppError(t, err, http.StatusBadRequest)
		assert.Zero(t, ex.calls)
	})
}

func TestContactMessage(t *testing.T) {
	ctx := context.Background()
	req := &domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello there"}

	t.Run("Unconfigured service is unavailable", func(t *testing.T) {
		uc := usecase.NewContactUsecase(email.NewEmailService(email.Config{}))
		err := uc.SendContactMessage(ctx, req)
		appErr := requireAppError(t, err, http.StatusServiceUnavailable)
		assert.Equal(t, "Contact service temporarily unavailable", appErr.Message)
	})

	cfg := email.Config{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p", ToEmail: "owner@example.com"}

	t.Run("Sends through SMTP", func(t *testing.T) {
		var sent []byte
		svc := email.NewEmailService(cfg).WithSender(func(_ string, _ smtp.Auth, _ string, to []string, msg []byte) error {
			assert.Equal(t, []string{"owner@example.com"}, to)
			sent = msg
			return nil
		})
		require.NoError(t, usecase.NewContactUsecase(svc).SendContactMessage(ctx, req))
		assert.Contains(t, string(sent), "Hello there")
	})

	t.Run("Whitespace-only fields", func(t *testing.T) {
		uc := usecase.NewContactUsecase(email.NewEmailService(cfg))
		err := uc.SendContactMessage(ctx, &domain.ContactRequest{Name: " ", Email: "ada@example.com", Subject: "Hi", Message: "\n"})
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, []string{"Name is required", "Message is required"}, appErr.Details)
	})
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	healthy, checks := usecase.NewHealthUsecase(memory.NewPortfolioRepository(), nil).Check(ctx)
	assert.True(t, healthy)
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "disabled", checks["redis"])

	repo := new(MockPortfolioRepo)
	repo.On("Ping", ctx).Return(errors.New("down"))
	healthy, checks = usecase.NewHealthUsecase(repo, nil).Check(ctx)
	assert.False(t, healthy)
	assert.Equal(t, "down", checks["database"])
}
