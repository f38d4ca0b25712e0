package checker

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/behummble/link-alive/internal/models"
)

const DefaultTimeout = 9500 * time.Millisecond

type Checker struct {
	client  *http.Client
	timeout time.Duration
	log     *zap.Logger
}

func NewChecker(transport http.RoundTripper, timeout time.Duration, log *zap.Logger) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{
		client:  &http.Client{Transport: transport},
		timeout: timeout,
		log:     log,
	}
}

// Check sends a HEAD request to the effective URL. It always returns a
// result: anything that prevents a response within the timeout is reported
// as an unreachable link rather than an error.
func (c *Checker) Check(ctx context.Context, link models.ResolvedLink) models.LinkResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link.EffectiveURL, nil)
	if err != nil {
		return c.unreachable(link, err)
	}
	for key, value := range link.ExtraHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.unreachable(link, err)
	}
	defer resp.Body.Close()

	return models.Alive(link, resp.StatusCode, contentLength(resp.Header))
}

func (c *Checker) unreachable(link models.ResolvedLink, err error) models.LinkResult {
	c.log.Warn(
		"Request failed",
		zap.String("url", link.OriginalURL),
		zap.String("checked_url", link.EffectiveURL),
		zap.Error(err),
	)
	return models.Unreachable(link, err.Error())
}

// contentLength reads the header the way a numeric conversion of its text
// would: surrounding spaces are ignored, an empty value is zero, anything
// else that is not a number is unknown. Over HTTP/1.x the transport already
// refuses malformed or repeated Content-Length values and the check fails
// before this runs; only HTTP/2 responses reach the unknown branch.
func contentLength(header http.Header) models.Size {
	values, ok := header[http.CanonicalHeaderKey("Content-Length")]
	if !ok || len(values) == 0 {
		return models.UnknownSize()
	}

	raw := strings.TrimSpace(strings.Join(values, ", "))
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.UnknownSize()
	}
	return models.Size(n)
}
