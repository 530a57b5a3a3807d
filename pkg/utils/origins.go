package utils

import (
	"net/url"
	"strings"
)

// Native deep-link schemes used as OAuth callback targets.
const (
	SchemeNativeApp = "mybettertapp://"
	SchemeExpo      = "exp://"
)

// TrustedOrigins holds the origin allow-list computed once at startup.
// Preview hosts (localhost, *.vercel.app) are admitted only outside
// production, never derived from request headers.
type TrustedOrigins struct {
	origins      map[string]struct{}
	allowPreview bool
}

func ComputeTrustedOrigins(cfg *Config) *TrustedOrigins {
	t := &TrustedOrigins{
		origins:      make(map[string]struct{}),
		allowPreview: !cfg.App.IsProduction(),
	}

	t.add(SchemeNativeApp)
	t.add(SchemeExpo)

	for _, origin := range cfg.CORS.Origins {
		t.add(origin)
	}

	if cfg.App.BaseURL != "" {
		if u, err := url.Parse(cfg.App.BaseURL); err == nil && u.Scheme != "" && u.Host != "" {
			t.add(u.Scheme + "://" + u.Host)
		}
	}

	return t
}

func (t *TrustedOrigins) add(origin string) {
	// Scheme-only entries like "exp://" keep their slashes, they are
	// matched by prefix
	if !strings.HasSuffix(origin, "://") {
		origin = strings.TrimRight(origin, "/")
	}
	t.origins[origin] = struct{}{}
}

// Contains reports whether the given request origin is allowed.
func (t *TrustedOrigins) Contains(origin string) bool {
	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		return false
	}

	if _, ok := t.origins[origin]; ok {
		return true
	}

	// Deep-link origins arrive with the scheme only
	for scheme := range t.origins {
		if strings.HasSuffix(scheme, "://") && strings.HasPrefix(origin, scheme) {
			return true
		}
	}

	if !t.allowPreview {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || strings.HasSuffix(host, ".vercel.app")
}

// List returns the static allow-list, mostly for logging at startup.
func (t *TrustedOrigins) List() []string {
	list := make([]string, 0, len(t.origins))
	for origin := range t.origins {
		list = append(list, origin)
	}
	return list
}
