// Package models defines the Exam Oracle domain types: users, study sources,
// model results (study guides, quizzes, explanations) and quiz attempts.
package models

// User is the public view of an account. It never carries credential data.
type User struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Friends []string `json:"friends,omitempty"`
}

// HasFriend reports whether id is in the friend list.
func (u User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// Credential is a stored user record: the public fields plus the password hash.
type Credential struct {
	User
	PasswordHash string `json:"password"`
}

// Public strips the credential data.
func (c Credential) Public() User {
	u := c.User
	if u.Friends != nil {
		u.Friends = append([]string(nil), u.Friends...)
	}
	return u
}
