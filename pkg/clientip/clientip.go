package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Placeholder is returned by Address when the request carries no usable address.
const Placeholder = "x.x.x.x"

// GetIP extracts the real client IP address from the request.
// Headers are checked in priority order: CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For, X-Real-IP, then RemoteAddr. Only valid addresses are returned
// from headers; if none validates, the raw RemoteAddr host is returned.
func GetIP(r *http.Request) string {
	if ip := validIP(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if ip := validIP(r.Header.Get("DO-Connecting-IP")); ip != "" {
		return ip
	}
	if ip := validIP(firstForwarded(r)); ip != "" {
		return ip
	}
	if ip := validIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := validIP(remoteHost(r.RemoteAddr)); ip != "" {
		return ip
	}
	return remoteHost(r.RemoteAddr)
}

// Address returns the raw client address used for session fingerprinting.
// It is the first X-Forwarded-For entry, else the RemoteAddr host, else Placeholder.
// The value is not validated; malformed input is left to the caller.
func Address(r *http.Request) string {
	if addr := firstForwarded(r); addr != "" {
		return addr
	}
	if host := remoteHost(r.RemoteAddr); host != "" {
		return host
	}
	return Placeholder
}

// firstForwarded returns the leftmost X-Forwarded-For entry, trimmed.
func firstForwarded(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return ""
	}
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// remoteHost strips the port from a RemoteAddr value.
func remoteHost(remoteAddr string) string {
	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

func validIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
