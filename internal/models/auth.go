package models

// UserSession is the authenticated identity attached to a request after the
// session cookie has been validated. SubjectID is trusted for all ownership
// checks.
type UserSession struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"display_name"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// IsTutor reports whether the session belongs to a tutor
func (s *UserSession) IsTutor() bool {
	return s.Role == RoleTutor
}

// IsStudent reports whether the session belongs to a student
func (s *UserSession) IsStudent() bool {
	return s.Role == RoleStudent
}

// LoginRequest is the credential payload checked against the mock SSO store.
// The selected role must match the role map's answer for the user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=tutor student"`
}

// UserInfo is the profile summary returned by login and /auth/me
type UserInfo struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Faculty     string `json:"faculty,omitempty"`
	Department  string `json:"department,omitempty"`
}
