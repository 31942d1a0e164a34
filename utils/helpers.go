package utils

import (
	"time"

	"github.com/go-playground/validator/v10"

	"classtrack_go/models"
)

var validate = validator.New()

// ValidateStruct runs the shared validator over a request struct.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidRole checks if a role is valid
func IsValidRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleTeacher, models.RoleStudent, models.RoleParent:
		return true
	}
	return false
}

// IsValidStatus checks if an attendance status is valid
func IsValidStatus(status string) bool {
	switch status {
	case models.StatusPresent, models.StatusAbsent, models.StatusLate,
		models.StatusExcused, models.StatusMedical:
		return true
	}
	return false
}

// IsValidDate checks that a date is a real calendar day in YYYY-MM-DD form.
func IsValidDate(date string) bool {
	_, err := time.Parse(models.DateFormat, date)
	return err == nil && len(date) == len(models.DateFormat)
}
