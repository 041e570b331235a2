package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventOwnershipConflict  EventType = "ownership_conflict"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUploadRejected     EventType = "upload_rejected"
	EventAIParseFailed      EventType = "ai_parse_failed"
)

// SecurityEvent is one audit entry. SubjectValue is hashed before it is written.
type SecurityEvent struct {
	Event        EventType
	SubjectType  string // "user_id", "ip", "slug"
	SubjectValue string
	IP           string
	UserAgent    string
	RequestID    string
	Endpoint     string
	Details      map[string]any
}

// SecurityLogger writes audit events through zap
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewSecurityLogger wraps an existing zap logger
func NewSecurityLogger(zapLogger *zap.Logger, serviceName, environment string) *SecurityLogger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &SecurityLogger{
		zapLogger:   zapLogger,
		serviceName: serviceName,
		environment: environment,
	}
}

// NewProductionSecurityLogger builds a JSON zap logger on stdout
func NewProductionSecurityLogger(serviceName string, production bool) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	env := "development"
	if production {
		env = "production"
	}
	return NewSecurityLogger(logger, serviceName, env)
}

// Log writes event at a level derived from its type
func (sl *SecurityLogger) Log(event SecurityEvent) {
	if sl == nil {
		return
	}

	level := zapcore.WarnLevel
	switch event.Event {
	case EventOwnershipConflict, EventAIParseFailed:
		level = zapcore.InfoLevel
	case EventUnauthorizedAccess:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.Time("at", time.Now().UTC()),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", maskValue(event.SubjectType, event.SubjectValue)))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Endpoint != "" {
		fields = append(fields, zap.String("endpoint", event.Endpoint))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// LogUnauthorized logs a rejected bearer token or missing identity
func (sl *SecurityLogger) LogUnauthorized(ip, userAgent, requestID, endpoint, reason string) {
	sl.Log(SecurityEvent{
		Event:     EventUnauthorizedAccess,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Endpoint:  endpoint,
		Details:   map[string]any{"reason": reason},
	})
}

// LogOwnershipConflict logs a create/update refused because of slug or owner collision
func (sl *SecurityLogger) LogOwnershipConflict(userID, slug, reason string) {
	sl.Log(SecurityEvent{
		Event:        EventOwnershipConflict,
		SubjectType:  "user_id",
		SubjectValue: userID,
		Details:      map[string]any{"slug": slug, "reason": reason},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ip, userAgent, requestID, endpoint string) {
	sl.Log(SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Endpoint:     endpoint,
	})
}

// LogUploadRejected logs an upload refused by size, content or quota checks
func (sl *SecurityLogger) LogUploadRejected(ip, userID, filename, reason string) {
	sl.Log(SecurityEvent{
		Event:        EventUploadRejected,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
		Details:      map[string]any{"filename": filename, "reason": reason},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	if sl == nil {
		return nil
	}
	return sl.zapLogger.Sync()
}

// HashValue creates a short SHA256 digest of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "ip", "slug":
		return value
	default:
		return HashValue(value)
	}
}
