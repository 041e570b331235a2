package domain

// Gin context keys shared by the middlewares and response helpers
const (
	KeyCaller    = "link1t.caller"
	KeyRequestID = "link1t.request_id"
)
