package domain

// Attendance is the tri-state answer of a user for a meeting. Unknown means
// no answer was recorded; at the storage layer it corresponds to the absence
// of a row.
type Attendance int

const (
	Unknown Attendance = iota
	Attending
	Declined
)

// AttendanceFromBool maps an optional boolean (as found in storage or in API
// payloads) to an Attendance.
func AttendanceFromBool(b *bool) Attendance {
	switch {
	case b == nil:
		return Unknown
	case *b:
		return Attending
	default:
		return Declined
	}
}

// Bool returns the boolean form of the attendance, nil for Unknown.
func (a Attendance) Bool() *bool {
	switch a {
	case Attending:
		b := true
		return &b
	case Declined:
		b := false
		return &b
	default:
		return nil
	}
}

// Availability binds a user to their attendance answer for one meeting.
type Availability struct {
	User       User
	Attendance Attendance
}
