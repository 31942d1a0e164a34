package services

import (
	"context"
	"math"

	"classtrack_go/models"
	"classtrack_go/store"
)

// DashboardService computes the role-scoped dashboard aggregates.
// Read-only, no mutation.
type DashboardService struct {
	Store *store.Store
}

func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{Store: st}
}

// Stats returns the caller's dashboard numbers. The shape depends on the
// role; unknown roles get an empty object.
func (s *DashboardService) Stats(ctx context.Context, user *models.User) (map[string]interface{}, error) {
	switch user.Role {
	case models.RoleAdmin:
		return s.adminStats(ctx)
	case models.RoleTeacher:
		return s.teacherStats(ctx, user)
	case models.RoleStudent:
		return s.presenceStats(ctx, store.Filter{"student_id": user.ID}, nil)
	case models.RoleParent:
		return s.parentStats(ctx, user)
	}
	return map[string]interface{}{}, nil
}

func (s *DashboardService) adminStats(ctx context.Context) (map[string]interface{}, error) {
	totalUsers, err := s.Store.Users.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	totalClasses, err := s.Store.Classes.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.Store.Users.Count(ctx, store.Filter{"role": models.RoleStudent})
	if err != nil {
		return nil, err
	}
	totalTeachers, err := s.Store.Users.Count(ctx, store.Filter{"role": models.RoleTeacher})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"total_users":    totalUsers,
		"total_classes":  totalClasses,
		"total_students": totalStudents,
		"total_teachers": totalTeachers,
	}, nil
}

func (s *DashboardService) teacherStats(ctx context.Context, user *models.User) (map[string]interface{}, error) {
	classes, err := s.Store.Classes.FindMany(ctx, store.Filter{"teacher_ids": store.Contains(user.ID)})
	if err != nil {
		return nil, err
	}
	totalStudents := 0
	for _, class := range classes {
		totalStudents += len(class.StudentIDs)
	}
	return map[string]interface{}{
		"total_classes":  len(classes),
		"total_students": totalStudents,
	}, nil
}

func (s *DashboardService) parentStats(ctx context.Context, user *models.User) (map[string]interface{}, error) {
	if len(user.ParentChildIDs) == 0 {
		return map[string]interface{}{"children_count": 0}, nil
	}
	scope := store.Filter{"student_id": store.In(user.ParentChildIDs)}
	extra := map[string]interface{}{"children_count": len(user.ParentChildIDs)}
	return s.presenceStats(ctx, scope, extra)
}

// presenceStats counts records in scope and the present subset, and
// derives the percentage rounded to 2 decimals (0 when there are no
// records at all).
func (s *DashboardService) presenceStats(ctx context.Context, scope store.Filter, extra map[string]interface{}) (map[string]interface{}, error) {
	total, err := s.Store.Attendance.Count(ctx, scope)
	if err != nil {
		return nil, err
	}

	presentScope := store.Filter{"status": models.StatusPresent}
	for col, v := range scope {
		presentScope[col] = v
	}
	present, err := s.Store.Attendance.Count(ctx, presentScope)
	if err != nil {
		return nil, err
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(present)/float64(total)*100*100) / 100
	}

	stats := map[string]interface{}{
		"total_attendance_records": total,
		"present_count":            present,
		"attendance_percentage":    percentage,
	}
	for k, v := range extra {
		stats[k] = v
	}
	return stats, nil
}
