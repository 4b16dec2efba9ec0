package paranoid

// SessionKey is the reserved session key holding the trusted token list.
const SessionKey = "_paranoid_tokens"

// Session is the part of a session the guard needs.
// core/session.Session satisfies it.
type Session interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Clear()
}

// TokenStore reads and writes the trusted token list kept in a session.
type TokenStore struct {
	key string
}

// NewTokenStore creates a store using key. An empty key means SessionKey.
func NewTokenStore(key string) TokenStore {
	if key == "" {
		key = SessionKey
	}
	return TokenStore{key: key}
}

// Key returns the session key in use.
func (s TokenStore) Key() string {
	if s.key == "" {
		return SessionKey
	}
	return s.key
}

// ReadTokens returns the trusted tokens. ok is false for a session that has
// never been bound. A stored []any coming back from a JSON-backed store is
// accepted when every element is a string; any other shape counts as absent.
// A present but empty list is returned with ok true, so it never matches.
func (s TokenStore) ReadTokens(sess Session) (tokens []string, ok bool) {
	raw, found := sess.Get(s.Key())
	if !found || raw == nil {
		return nil, false
	}

	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		tokens = make([]string, 0, len(v))
		for _, item := range v {
			str, isStr := item.(string)
			if !isStr {
				return nil, false
			}
			tokens = append(tokens, str)
		}
		return tokens, true
	default:
		return nil, false
	}
}

// WriteToken records token in the session.
// Single retention replaces the list; multiple retention appends to it.
// Duplicates are kept.
func (s TokenStore) WriteToken(sess Session, token string, retention TokenRetention) {
	existing, ok := s.ReadTokens(sess)
	if !ok || retention != RetentionMultiple {
		sess.Set(s.Key(), []string{token})
		return
	}

	tokens := make([]string, 0, len(existing)+1)
	tokens = append(tokens, existing...)
	tokens = append(tokens, token)
	sess.Set(s.Key(), tokens)
}
