// Package antivirus scans uploaded assets before they reach the bucket.
package antivirus

import "context"

// ScanResult is the verdict for one file
type ScanResult struct {
	Infected    bool
	ThreatName  string
	ScannerName string
	// Error is set when no verdict could be reached; callers must not store the file
	Error error
}

// Scanner checks file content for malware
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) ScanResult
	Name() string
}

// NoOpScanner reports every file as clean. Local development only.
type NoOpScanner struct{}

var _ Scanner = NoOpScanner{}

func (NoOpScanner) Scan(context.Context, string, []byte) ScanResult {
	return ScanResult{ScannerName: "noop"}
}

func (NoOpScanner) Name() string { return "noop" }
