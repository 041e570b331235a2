package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// clamd rejects INSTREAM chunks above StreamMaxLength; stay well below the 25MB default
const clamChunkSize = 1 << 20

// ClamAVScanner streams files to a clamd daemon with the zINSTREAM command
type ClamAVScanner struct {
	address string
	timeout time.Duration
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner accepts a TCP "host:port" or a unix socket path
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) dial(ctx context.Context) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping reports whether clamd answers PONG
func (c *ClamAVScanner) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return err
	}
	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("clamd: unexpected ping reply %q", reply)
	}
	return nil
}

func (c *ClamAVScanner) Scan(ctx context.Context, _ string, data []byte) ScanResult {
	result := ScanResult{ScannerName: c.Name()}

	conn, err := c.dial(ctx)
	if err != nil {
		result.Error = fmt.Errorf("clamd: connect: %w", err)
		return result
	}
	defer conn.Close()

	if err := writeStream(conn, data); err != nil {
		result.Error = fmt.Errorf("clamd: send: %w", err)
		return result
	}

	reply, err := readReply(conn)
	if err != nil {
		result.Error = fmt.Errorf("clamd: read reply: %w", err)
		return result
	}

	// "stream: OK", "stream: Eicar-Signature FOUND" or "... ERROR"
	verdict := strings.TrimSpace(strings.TrimPrefix(reply, "stream:"))
	switch {
	case verdict == "OK":
	case strings.HasSuffix(verdict, " FOUND"):
		result.Infected = true
		result.ThreatName = strings.TrimSuffix(verdict, " FOUND")
	default:
		result.Error = fmt.Errorf("clamd: %s", reply)
	}
	return result
}

func writeStream(w io.Writer, data []byte) error {
	if _, err := w.Write([]byte("zINSTREAM\x00")); err != nil {
		return err
	}
	var size [4]byte
	for len(data) > 0 {
		n := min(len(data), clamChunkSize)
		binary.BigEndian.PutUint32(size[:], uint32(n))
		if _, err := w.Write(size[:]); err != nil {
			return err
		}
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	// zero-length chunk terminates the stream
	binary.BigEndian.PutUint32(size[:], 0)
	_, err := w.Write(size[:])
	return err
}

// readReply reads one NUL-terminated clamd reply
func readReply(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil && len(raw) == 0 {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(string(raw)), nil
}
