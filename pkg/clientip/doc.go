// Package clientip extracts client IP addresses from HTTP requests.
//
// # Header Priority
//
// GetIP checks headers in this order and returns the first valid address:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP (nginx and other proxies)
//  5. RemoteAddr (direct connection)
//
// Addresses are validated with net.ParseIP and normalized with net.IP.String.
// The unspecified address 0.0.0.0 is rejected. If nothing validates, the
// RemoteAddr host is returned as is.
//
//	clientIP := clientip.GetIP(r)
//
// # Session Fingerprinting
//
// Address follows a simpler rule used by session fingerprinting: the first
// X-Forwarded-For entry as sent, then the RemoteAddr host, then the
// placeholder "x.x.x.x". It does not validate, so the fingerprint layer decides
// how malformed values are treated.
//
//	addr := clientip.Address(r)
//
// # Proxy Configuration
//
// When deploying behind proxies, ensure they set the appropriate headers:
//   - Nginx: proxy_set_header X-Real-IP $remote_addr;
//   - Apache: RequestHeader set X-Forwarded-For %h
//   - Cloudflare: Automatically sets CF-Connecting-IP
//   - DigitalOcean Load Balancer: Automatically sets DO-Connecting-IP
package clientip
