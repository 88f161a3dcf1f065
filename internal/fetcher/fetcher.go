// Package fetcher resolves a topic to a page and extracts its title and
// paragraphs.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wikibot/internal/domain"
)

const maxBodyBytes = 16 << 20

// Config configures the HTTP page fetcher.
type Config struct {
	BaseURL    string
	UserAgent  string
	Extractor  string
	Timeout    time.Duration
	MaxRetries int
}

// Client fetches pages over HTTP. A single Client may be shared by sessions.
type Client struct {
	baseURL    string
	userAgent  string
	extractor  Extractor
	client     *http.Client
	maxRetries int
	retryBase  time.Duration
	log        *zap.Logger
}

// New creates a fetcher. An unknown extractor name is an error.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	ex, err := NewExtractor(cfg.Extractor)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	t := cfg.Timeout
	if t == 0 {
		t = 15 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://en.wikipedia.org/wiki/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		extractor:  ex,
		client:     &http.Client{Timeout: t},
		maxRetries: max(cfg.MaxRetries, 0),
		retryBase:  200 * time.Millisecond,
		log:        log.Named("fetcher"),
	}, nil
}

// ResolveURL maps a topic to a page URL. Absolute http(s) URLs pass through;
// anything else is title-cased, joined with underscores and appended to the
// base URL.
func (c *Client) ResolveURL(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", domain.ErrEmptyTopic
	}
	if strings.HasPrefix(topic, "http://") || strings.HasPrefix(topic, "https://") {
		u, err := url.Parse(topic)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("invalid url %q", topic)
		}
		return u.String(), nil
	}
	title := strings.Join(strings.Fields(cases.Title(language.English).String(topic)), "_")
	return c.baseURL + url.PathEscape(title), nil
}

// Fetch retrieves and extracts the page for topic. Errors are *domain.FetchError.
func (c *Client) Fetch(ctx context.Context, topic string) (domain.Document, error) {
	pageURL, err := c.ResolveURL(topic)
	if err != nil {
		return domain.Document{}, domain.NotFoundError(topic, "", err)
	}
	body, err := c.get(ctx, topic, pageURL)
	if err != nil {
		return domain.Document{}, err
	}
	u, _ := url.Parse(pageURL)
	doc, err := c.extractor.Extract(bytes.NewReader(body), u)
	if err != nil {
		c.log.Warn("extract failed", zap.String("url", pageURL), zap.Error(err))
		return domain.Document{}, domain.NotFoundError(topic, pageURL, err)
	}
	doc.URL = pageURL
	c.log.Info("page fetched",
		zap.String("url", pageURL),
		zap.String("title", doc.Title),
		zap.Int("paragraphs", len(doc.Paragraphs)),
	)
	return doc, nil
}

func (c *Client) get(ctx context.Context, topic, pageURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt-1); err != nil {
				return nil, domain.NetworkError(topic, pageURL, err)
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, domain.NotFoundError(topic, pageURL, err)
		}
		req.Header.Set("Accept", "text/html")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			c.log.Debug("fetch attempt failed", zap.String("url", pageURL), zap.Int("attempt", attempt), zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			_ = resp.Body.Close()
			return nil, domain.NotFoundError(topic, pageURL, fmt.Errorf("status %s", resp.Status))
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("status %s", resp.Status)
			c.log.Debug("fetch attempt rejected", zap.String("url", pageURL), zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			continue
		case resp.StatusCode >= 300:
			_ = resp.Body.Close()
			return nil, domain.NetworkError(topic, pageURL, fmt.Errorf("status %s", resp.Status))
		}

		if ct := resp.Header.Get("Content-Type"); ct != "" {
			if mt, _, err := mime.ParseMediaType(ct); err == nil && mt != "text/html" && mt != "application/xhtml+xml" {
				_ = resp.Body.Close()
				return nil, domain.NotFoundError(topic, pageURL, fmt.Errorf("unexpected content type %s", mt))
			}
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no attempts made")
	}
	c.log.Warn("fetch failed", zap.String("url", pageURL), zap.Error(lastErr))
	return nil, domain.NetworkError(topic, pageURL, lastErr)
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	t := time.NewTimer(retryDelay(c.retryBase, attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
