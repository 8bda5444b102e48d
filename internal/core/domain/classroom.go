package domain

// Classroom groups students under instructor admins. AutoWalletID is the
// wallet automatically shared with students who join via a code.
type Classroom struct {
	ClassroomID  string   `json:"classroomID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	JoinCodes    []string `json:"joinCodes"` // Generated hex codes students redeem to join
	Admins       []string `json:"admins"`    // UserIDs
	Students     []string `json:"students"`  // UserIDs
	AutoWalletID string   `json:"autoWalletID"`
	AuditFields
}

// IsAdmin reports whether the user administers this classroom.
func (c *Classroom) IsAdmin(userID string) bool {
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// IsStudent reports whether the user is enrolled as a student.
func (c *Classroom) IsStudent(userID string) bool {
	for _, id := range c.Students {
		if id == userID {
			return true
		}
	}
	return false
}
