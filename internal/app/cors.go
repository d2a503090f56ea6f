package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a browser origin matches one of the
// dashboard origin patterns from config. Patterns cover exact hosts,
// subdomain wildcards ("*.boardlink.io") and port wildcards
// ("localhost:*") so local dashboard builds work without config edits.
func originAllowed(patterns []string, origin string) bool {
	host := originHost(origin)
	for _, pattern := range patterns {
		if matchOrigin(pattern, host) {
			return true
		}
	}
	return false
}

// originHost returns the "host[:port]" portion of an Origin header value.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

func matchOrigin(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	if strings.HasSuffix(pattern, ":*") {
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
