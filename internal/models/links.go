package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// StatusGatewayTimeout is reported for every link that could not be checked,
// whatever the underlying cause.
const StatusGatewayTimeout = 504

type VerifyLinksRequest struct {
	URLs []string `json:"urls"`
}

type BatchResponse struct {
	Results []LinkResult `json:"results"`
}

type LinkRequest struct {
	OriginalURL string
}

// ResolvedLink is the URL actually contacted for a LinkRequest together with
// the headers the rewrite rule asks for.
type ResolvedLink struct {
	OriginalURL  string
	EffectiveURL string
	ExtraHeaders map[string]string
}

// Size is a byte count taken from Content-Length. NaN means unknown and is
// encoded as null.
type Size float64

func UnknownSize() Size {
	return Size(math.NaN())
}

func (s Size) Known() bool {
	return !math.IsNaN(float64(s))
}

func (s Size) MarshalJSON() ([]byte, error) {
	if !s.Known() || math.IsInf(float64(s), 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(s), 'f', -1, 64), nil
}

func (s *Size) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = UnknownSize()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Size(v)
	return nil
}

// LinkResult is either a completed check (Failed reports false) or a link
// that could not be checked, in which case Body holds the reason.
type LinkResult struct {
	URL         string
	CheckedURL  string
	StatusCode  int
	IsAlive     bool
	SizeInBytes Size
	Headers     map[string]string
	Body        string
	failed      bool
}

func Alive(link ResolvedLink, statusCode int, size Size) LinkResult {
	return LinkResult{
		URL:         link.OriginalURL,
		CheckedURL:  link.EffectiveURL,
		StatusCode:  statusCode,
		IsAlive:     statusCode >= 200 && statusCode <= 299,
		SizeInBytes: size,
		Headers:     link.ExtraHeaders,
	}
}

func Unreachable(link ResolvedLink, reason string) LinkResult {
	return LinkResult{
		URL:         link.OriginalURL,
		StatusCode:  StatusGatewayTimeout,
		SizeInBytes: UnknownSize(),
		Body:        reason,
		failed:      true,
	}
}

func (r LinkResult) Failed() bool {
	return r.failed
}

type aliveJSON struct {
	StatusCode  int               `json:"statusCode"`
	IsAlive     bool              `json:"isAlive"`
	SizeInBytes Size              `json:"sizeInBytes"`
	URL         string            `json:"url"`
	CheckedURL  string            `json:"checkedUrl"`
	Headers     map[string]string `json:"headers"`
}

type unreachableJSON struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	URL        string `json:"url"`
}

func (r LinkResult) MarshalJSON() ([]byte, error) {
	if r.failed {
		return json.Marshal(unreachableJSON{
			StatusCode: r.StatusCode,
			Body:       r.Body,
			URL:        r.URL,
		})
	}
	headers := r.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	return json.Marshal(aliveJSON{
		StatusCode:  r.StatusCode,
		IsAlive:     r.IsAlive,
		SizeInBytes: r.SizeInBytes,
		URL:         r.URL,
		CheckedURL:  r.CheckedURL,
		Headers:     headers,
	})
}

// UnmarshalJSON tells the two shapes apart by the presence of checkedUrl.
func (r *LinkResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		aliveJSON
		Body       *string `json:"body"`
		CheckedURL *string `json:"checkedUrl"`
	}
	raw.SizeInBytes = UnknownSize()
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.CheckedURL == nil {
		body := ""
		if raw.Body != nil {
			body = *raw.Body
		}
		*r = LinkResult{
			URL:         raw.URL,
			StatusCode:  raw.StatusCode,
			SizeInBytes: UnknownSize(),
			Body:        body,
			failed:      true,
		}
		return nil
	}
	*r = LinkResult{
		URL:         raw.URL,
		CheckedURL:  *raw.CheckedURL,
		StatusCode:  raw.StatusCode,
		IsAlive:     raw.IsAlive,
		SizeInBytes: raw.SizeInBytes,
		Headers:     raw.Headers,
	}
	return nil
}
