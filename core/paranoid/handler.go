package paranoid

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/paranoid/core/handler"
)

// HandlerKind identifies how a mismatch is answered.
type HandlerKind int

const (
	// HandlerDefault answers with 401 Unauthorized through the router's error handler.
	HandlerDefault HandlerKind = iota
	// HandlerCallback answers with the response returned by a callback.
	HandlerCallback
	// HandlerRedirect answers with a 302 redirect to a URL, path or named route.
	HandlerRedirect
)

func (k HandlerKind) String() string {
	switch k {
	case HandlerDefault:
		return "default"
	case HandlerCallback:
		return "callback"
	case HandlerRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Callback produces the response for a rejected request.
type Callback func(r *http.Request) handler.Response

// Handler is the invalid-session handler: one of default, callback or redirect.
// The zero value is the default handler.
type Handler struct {
	kind     HandlerKind
	callback Callback
	target   string
}

// DefaultHandler returns the 401 handler.
func DefaultHandler() Handler {
	return Handler{kind: HandlerDefault}
}

// CallbackHandler returns a handler that delegates to fn.
// A nil fn yields the default handler.
func CallbackHandler(fn Callback) Handler {
	if fn == nil {
		return DefaultHandler()
	}
	return Handler{kind: HandlerCallback, callback: fn}
}

// RedirectHandler returns a handler redirecting to target.
// Targets starting with "http://", "https://" or "/" are used as is;
// anything else is treated as a route name. An empty target yields the default handler.
func RedirectHandler(target string) Handler {
	target = strings.TrimSpace(target)
	if target == "" {
		return DefaultHandler()
	}
	return Handler{kind: HandlerRedirect, target: target}
}

// Kind returns the handler kind.
func (h Handler) Kind() HandlerKind {
	return h.kind
}

// Target returns the redirect target, or "" for other kinds.
func (h Handler) Target() string {
	return h.target
}

// IsRouteName reports whether the redirect target must be resolved as a named route.
func (h Handler) IsRouteName() bool {
	return h.kind == HandlerRedirect && !isLiteralTarget(h.target)
}

func isLiteralTarget(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "/")
}

// URLResolver resolves route names to paths. core/router.Router implements it.
type URLResolver interface {
	URL(name string, params ...string) (string, error)
}
