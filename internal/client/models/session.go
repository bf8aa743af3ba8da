package models

import "time"

// Session is the locally cached sign-in state.
type Session struct {
	Token    string
	UserID   string
	SignedIn time.Time
}

// Empty reports whether no token is cached.
func (s *Session) Empty() bool {
	return s == nil || s.Token == ""
}
