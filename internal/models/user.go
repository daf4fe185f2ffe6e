package models

// Roles assigned by the identity provider's role map
const (
	RoleTutor   = "tutor"
	RoleStudent = "student"
)

// Profile is a user record from the datacore profile store. Subjects are the
// courses a tutor teaches; Courses are the courses a student is enrolled in.
type Profile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Role       string   `json:"role_in_school,omitempty"`
	Faculty    string   `json:"faculty,omitempty"`
	Department string   `json:"department,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Rating     float64  `json:"rating,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
	Courses    []string `json:"courses,omitempty"`
}

// Credential is a mock SSO record: username/password plus the subject id and
// mapped role the session is issued for.
type Credential struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// TutorSummary is the discovery-listing shape returned to students
type TutorSummary struct {
	TutorID        string   `json:"tutor_id"`
	TutorName      string   `json:"tutor_name"`
	Specialization string   `json:"specialization"`
	Subjects       []string `json:"subjects"`
	Rating         float64  `json:"rating"`
	Email          string   `json:"email"`
}

// TutorDetails extends the summary with the tutor's available slots
type TutorDetails struct {
	TutorID        string   `json:"tutor_id"`
	TutorName      string   `json:"tutor_name"`
	ContactEmail   string   `json:"contact_email"`
	Specialization string   `json:"specialization"`
	Courses        []string `json:"teaching_courses"`
	Rating         float64  `json:"rating"`
	Department     string   `json:"department,omitempty"`
	AvailableSlots []*Slot  `json:"available_slots"`
}
