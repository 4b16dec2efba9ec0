package router

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// names maps route names to absolute patterns.
// One registry is shared by a router and all of its sub-routers.
type names struct {
	mu       sync.RWMutex
	patterns map[string]string
}

func newNames() *names {
	return &names{patterns: make(map[string]string)}
}

func (n *names) add(name, pattern string) {
	if name == "" {
		panic(fmt.Errorf("%w: empty route name", ErrInvalidPattern))
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if existing, ok := n.patterns[name]; ok && existing != pattern {
		panic(fmt.Errorf("%w: %q already points to %s", ErrDuplicateName, name, existing))
	}
	n.patterns[name] = pattern
}

func (n *names) url(name string, params ...string) (string, error) {
	n.mu.RLock()
	pattern, ok := n.patterns[name]
	n.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return expand(pattern, params)
}

// expand replaces every {param} placeholder and a trailing wildcard with params in order.
// Placeholders may carry chi regexps such as {id:[0-9]{1,3}}.
func expand(pattern string, params []string) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))

	next := 0
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '{':
			depth, j := 1, i+1
			for ; j < len(pattern) && depth > 0; j++ {
				switch pattern[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
			}
			if depth != 0 {
				return "", fmt.Errorf("%w: unbalanced braces in %q", ErrInvalidPattern, pattern)
			}
			if next >= len(params) {
				key, _, _ := strings.Cut(pattern[i+1:j-1], ":")
				return "", fmt.Errorf("%w: %q in %s", ErrMissingParam, key, pattern)
			}
			b.WriteString(url.PathEscape(params[next]))
			next++
			i = j - 1
		case c == '*' && i == len(pattern)-1:
			if next < len(params) {
				b.WriteString(params[next])
			}
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
