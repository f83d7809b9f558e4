package models

// Session carries the claims established at login. It is scoped to a
// single request and handed explicitly to whatever needs it.
type Session struct {
	CSRFToken string `json:"csrf_token"`
	IsAdmin   bool   `json:"is_admin"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// Actor returns the identity used for authorization decisions.
func (s *Session) Actor() Actor {
	if s == nil {
		return Actor{}
	}
	return Actor{UserID: s.UserID, IsAdmin: s.IsAdmin}
}

// Actor is the caller of an authorization-sensitive operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}
