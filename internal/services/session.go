package services

import "github.com/dmitrijs2005/examoracle/internal/models"

// Session is the logged-in context handed to services. Token is the signed
// pointer persisted in the record store.
type Session struct {
	User  models.User
	Token string
}

// UserID is "" for a nil session.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.User.ID
}
