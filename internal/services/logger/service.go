package logger

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const redacted = "REDACTED"

// RoundTripper logs every outgoing request and its response to a zap logger.
// Query parameters listed in Redact are masked before the URL is logged.
type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
	Redact []string
}

func NewRoundTripper(logger *zap.Logger, redact ...string) *RoundTripper {
	return &RoundTripper{
		Logger: logger,
		Proxy:  http.DefaultTransport,
		Redact: redact,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)

	reqURL := RedactURL(req.URL, l.Redact...)

	if err != nil {
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", reqURL),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		l.Logger.Error("Failed to read response body",
			zap.String("method", req.Method),
			zap.String("url", reqURL),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		l.closeBody(resp, reqURL)
		return nil, err
	}
	l.closeBody(resp, reqURL)

	resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	l.Logger.Info("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", reqURL),
		zap.ByteString("body_snipped", bodyBytes),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

func (l *RoundTripper) closeBody(resp *http.Response, reqURL string) {
	if err := resp.Body.Close(); err != nil {
		l.Logger.Warn("Failed to close response body",
			zap.String("url", reqURL),
			zap.Error(err),
		)
	}
}

// RedactURL renders u with the values of the given query parameters replaced.
func RedactURL(u *url.URL, params ...string) string {
	if u == nil {
		return ""
	}
	if len(params) == 0 || u.RawQuery == "" {
		return u.String()
	}

	clone := *u
	q := clone.Query()
	for _, p := range params {
		if q.Has(p) {
			q.Set(p, redacted)
		}
	}
	clone.RawQuery = q.Encode()

	return clone.String()
}
