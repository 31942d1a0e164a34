package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
	StatusMedical = "medical"
)

// DateFormat is the calendar-date wire format used for attendance records.
const DateFormat = "2006-01-02"

// StringList is a JSON-encoded list of ids stored in a single column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	}
	return fmt.Errorf("cannot scan %T into StringList", value)
}

func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Contains reports whether id is present in the list.
func (s StringList) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// User model. StudentID and ClassID are set for students,
// ParentChildIDs for parents.
type User struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	Email          string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Name           string     `json:"name" gorm:"size:255;not null"`
	Picture        string     `json:"picture,omitempty" gorm:"size:500"`
	Role           string     `json:"role" gorm:"size:20;not null;default:'student'"`
	StudentID      string     `json:"student_id,omitempty" gorm:"size:36"`
	ParentChildIDs StringList `json:"parent_child_ids" gorm:"type:json;column:parent_child_ids"`
	ClassID        string     `json:"class_id,omitempty" gorm:"size:36"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Session is a server-side login session. The token is the opaque
// credential issued by the auth provider; expired sessions are removed
// lazily on first access, never by a background job.
type Session struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	UserID       string    `json:"user_id" gorm:"size:36;not null;index"`
	SessionToken string    `json:"session_token" gorm:"size:255;not null;uniqueIndex"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// Class model, e.g. "12-A Commerce".
type Class struct {
	ID         string     `json:"id" gorm:"primaryKey;size:36"`
	Name       string     `json:"name" gorm:"size:255;not null"`
	Division   string     `json:"division" gorm:"size:50"`
	Stream     string     `json:"stream" gorm:"size:100"`
	Grade      string     `json:"grade" gorm:"size:20"`
	TeacherIDs StringList `json:"teacher_ids" gorm:"type:json;column:teacher_ids"`
	StudentIDs StringList `json:"student_ids" gorm:"type:json;column:student_ids"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AttendanceRecord is one student's status for one class on one date.
// At most one record exists per (student, class, date); the marking
// operation enforces this by replacing the whole class+date batch.
type AttendanceRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	StudentID string    `json:"student_id" gorm:"size:36;not null;index:idx_attendance_student"`
	ClassID   string    `json:"class_id" gorm:"size:36;not null;index:idx_attendance_class_date"`
	Date      string    `json:"date" gorm:"size:10;not null;index:idx_attendance_class_date"`
	Status    string    `json:"status" gorm:"size:20;not null"`
	MarkedBy  string    `json:"marked_by" gorm:"size:36;not null"`
	Notes     string    `json:"notes,omitempty" gorm:"size:500"`
	MarkedAt  time.Time `json:"marked_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}
