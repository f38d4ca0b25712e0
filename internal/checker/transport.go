package checker

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// Transports keeps one connection pool for https targets and one for plain
// http. Both skip certificate verification: mirrors routinely run on
// self-signed or expired certificates and that must not count as dead.
// Built once and shared by every check.
type Transports struct {
	secure *http.Transport
	plain  *http.Transport
}

func NewTransports() (*Transports, error) {
	secure := newTransport()
	secure.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	if err := http2.ConfigureTransport(secure); err != nil {
		return nil, err
	}

	plain := newTransport()
	plain.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &Transports{
		secure: secure,
		plain:  plain,
	}, nil
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// RoundTrip picks the pool by scheme. Redirects that switch scheme land in
// the other pool.
func (t *Transports) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme == "https" {
		return t.secure.RoundTrip(req)
	}
	return t.plain.RoundTrip(req)
}

func (t *Transports) CloseIdleConnections() {
	t.secure.CloseIdleConnections()
	t.plain.CloseIdleConnections()
}
