package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vet-clinic-booking/internal/platform/logger"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// Client es el cliente JSON que usa el bot para hablar con la API de la clínica.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	log       logger.Logger
}

type Option func(*Client)

// WithTransport permite inyectar un RoundTripper (tests, proxies).
func WithTransport(tr http.RoundTripper) Option {
	return func(c *Client) {
		if tr != nil {
			c.HTTP.Transport = tr
		}
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = strings.TrimSpace(ua) }
}

// New exige una base URL absoluta; los paths de DoJSON se resuelven contra ella.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	baseURL = strings.TrimSpace(baseURL)
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("httpclient: invalid base url %q", baseURL)
	}

	c := &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: "vet-clinic-bot",
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HTTPError representa una respuesta no-2xx; Body conserva el cuerpo crudo.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// ClientError indica 4xx: el servidor rechazó la petición, reintentar no sirve.
func (e *HTTPError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Decode interpreta el cuerpo del error como JSON.
func (e *HTTPError) Decode(v any) error {
	if len(e.Body) == 0 {
		return errors.New("httpclient: empty error body")
	}
	return json.Unmarshal(e.Body, v)
}

// DoJSON envía in (si no es nil) como JSON y decodifica la respuesta 2xx en out (si no es nil).
// Las respuestas no-2xx vuelven como *HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolve(path)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.log.Warn("api request failed", map[string]any{
			"method": method,
			"url":    fullURL,
			"err":    err,
		})
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	c.log.Debug("api request", map[string]any{
		"method":      method,
		"url":         fullURL,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: bytes.TrimSpace(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("httpclient: empty path")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path, nil
}
