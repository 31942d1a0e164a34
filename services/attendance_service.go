package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"classtrack_go/models"
	"classtrack_go/store"
	"classtrack_go/utils"
)

// MarkEntry is one student's submitted status for a marking batch.
type MarkEntry struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Notes     string `json:"notes"`
}

// AttendanceService owns the per-role visibility rules over attendance
// records and the replace semantics of marking.
type AttendanceService struct {
	Store *store.Store
}

func NewAttendanceService(st *store.Store) *AttendanceService {
	return &AttendanceService{Store: st}
}

// Mark replaces the whole attendance batch for (classID, date) with the
// submitted entries, stamped with the marker's id. Submitting a subset
// of a class on a re-mark removes the records of students left out.
func (s *AttendanceService) Mark(ctx context.Context, marker *models.User, classID, date string, entries []MarkEntry) error {
	if !utils.IsValidDate(date) {
		return fmt.Errorf("%w: date must be %s", utils.ErrInvalid, models.DateFormat)
	}
	for _, e := range entries {
		if e.StudentID == "" {
			return fmt.Errorf("%w: student_id is required", utils.ErrInvalid)
		}
		if !utils.IsValidStatus(e.Status) {
			return fmt.Errorf("%w: unknown attendance status %q", utils.ErrInvalid, e.Status)
		}
	}

	// Delete-then-insert is not transactional: a reader between the two
	// calls can observe an empty set for this class+date. Accepted gap.
	if _, err := s.Store.Attendance.DeleteMany(ctx, store.Filter{"class_id": classID, "date": date}); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	records := make([]models.AttendanceRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, models.AttendanceRecord{
			ID:        uuid.NewString(),
			StudentID: e.StudentID,
			ClassID:   classID,
			Date:      date,
			Status:    e.Status,
			Notes:     e.Notes,
			MarkedBy:  marker.ID,
			MarkedAt:  now,
		})
	}
	return s.Store.Attendance.InsertMany(ctx, records)
}

// ClassAttendance returns the class's records visible to the caller,
// optionally narrowed to one date. Admins and teachers see the whole
// class, students only themselves within their own class, parents only
// their children and only if at least one child is in the class.
func (s *AttendanceService) ClassAttendance(ctx context.Context, user *models.User, classID, date string) ([]models.AttendanceRecord, error) {
	filter := store.Filter{"class_id": classID}
	if date != "" {
		filter["date"] = date
	}

	switch user.Role {
	case models.RoleAdmin, models.RoleTeacher:
		// unrestricted
	case models.RoleStudent:
		if user.ClassID != classID {
			return nil, utils.ErrForbidden
		}
		filter["student_id"] = user.ID
	case models.RoleParent:
		class, err := s.Store.Classes.FindOne(ctx, store.Filter{"id": classID})
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, fmt.Errorf("%w: class not found", utils.ErrNotFound)
		}
		allowed := false
		for _, childID := range user.ParentChildIDs {
			if class.StudentIDs.Contains(childID) {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, utils.ErrForbidden
		}
		filter["student_id"] = store.In(user.ParentChildIDs)
	default:
		return nil, utils.ErrForbidden
	}

	return s.Store.Attendance.FindMany(ctx, filter)
}

// StudentAttendance returns all records for one student, if the caller
// may see them: admins and teachers always, students only for
// themselves, parents only for their own children.
func (s *AttendanceService) StudentAttendance(ctx context.Context, user *models.User, studentID string) ([]models.AttendanceRecord, error) {
	switch user.Role {
	case models.RoleAdmin, models.RoleTeacher:
	case models.RoleStudent:
		if user.ID != studentID {
			return nil, utils.ErrForbidden
		}
	case models.RoleParent:
		if !user.ParentChildIDs.Contains(studentID) {
			return nil, utils.ErrForbidden
		}
	default:
		return nil, utils.ErrForbidden
	}

	return s.Store.Attendance.FindMany(ctx, store.Filter{"student_id": studentID})
}
