package platform

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
)

// Capabilities answers environment queries. Implementations may change their
// answers over time; callers re-read them when they need a fresh value.
type Capabilities interface {
	IsSecureContext() bool
	UserAgent() string
	IsMobile() bool
}

var mobileUA = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)

// IsMobileUserAgent reports whether ua names a phone or tablet platform.
func IsMobileUserAgent(ua string) bool {
	return mobileUA.MatchString(ua)
}

// Static is a Capabilities with a mutable secure flag and a fixed user agent.
type Static struct {
	secure atomic.Bool
	agent  string
}

// NewStatic creates capabilities with the given secure flag and user agent.
func NewStatic(secure bool, userAgent string) *Static {
	s := &Static{agent: userAgent}
	s.secure.Store(secure)
	return s
}

// FromOrigin derives the secure flag from an origin URL. https, wss and file
// origins are secure, and so are loopback hosts on any scheme.
func FromOrigin(origin, userAgent string) (*Static, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("platform: parse origin %q: %w", origin, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("platform: origin %q has no scheme", origin)
	}
	return NewStatic(isTrustworthy(u), userAgent), nil
}

func isTrustworthy(u *url.URL) bool {
	switch strings.ToLower(u.Scheme) {
	case "https", "wss", "file":
		return true
	}
	host := strings.ToLower(u.Hostname())
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// SetSecure changes the secure flag.
func (s *Static) SetSecure(secure bool) { s.secure.Store(secure) }

func (s *Static) IsSecureContext() bool { return s.secure.Load() }
func (s *Static) UserAgent() string     { return s.agent }
func (s *Static) IsMobile() bool        { return IsMobileUserAgent(s.agent) }
