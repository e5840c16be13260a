package identity

import "strings"

// Identity is the resolved caller of a request. It is threaded explicitly
// through repository and service calls; there is no ambient session state.
// A nil *Identity means an anonymous request.
type Identity struct {
	UserID string
	Email  string
}

// Authenticated reports whether the identity resolves to a known user.
func (id *Identity) Authenticated() bool {
	return id != nil && id.UserID != ""
}

// NormalizedEmail returns the identity's email lowercased for whitelist
// comparison, or "" when absent.
func (id *Identity) NormalizedEmail() string {
	if id == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(id.Email))
}
