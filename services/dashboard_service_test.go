package services

import (
	"context"
	"testing"

	"classtrack_go/models"
	"classtrack_go/store"
)

func seedDashboardFixtures(t *testing.T, st *store.Store) {
	t.Helper()
	ctx := context.Background()

	users := []models.User{
		{ID: "A1", Email: "a1@x.io", Role: models.RoleAdmin},
		{ID: "T1", Email: "t1@x.io", Role: models.RoleTeacher},
		{ID: "S1", Email: "s1@x.io", Role: models.RoleStudent, ClassID: "C1"},
		{ID: "S2", Email: "s2@x.io", Role: models.RoleStudent, ClassID: "C1"},
		{ID: "P1", Email: "p1@x.io", Role: models.RoleParent, ParentChildIDs: models.StringList{"S1"}},
	}
	if err := st.Users.InsertMany(ctx, users); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	classes := []models.Class{
		{ID: "C1", Name: "12-A", TeacherIDs: models.StringList{"T1"}, StudentIDs: models.StringList{"S1", "S2"}},
		{ID: "C2", Name: "12-B", TeacherIDs: models.StringList{"T1"}, StudentIDs: models.StringList{"S3"}},
		{ID: "C3", Name: "12-C", TeacherIDs: models.StringList{"T2"}, StudentIDs: models.StringList{"S4"}},
	}
	if err := st.Classes.InsertMany(ctx, classes); err != nil {
		t.Fatalf("seed classes: %v", err)
	}

	records := []models.AttendanceRecord{
		{ID: "r1", StudentID: "S1", ClassID: "C1", Date: "2024-01-15", Status: models.StatusPresent},
		{ID: "r2", StudentID: "S1", ClassID: "C1", Date: "2024-01-16", Status: models.StatusAbsent},
		{ID: "r3", StudentID: "S1", ClassID: "C1", Date: "2024-01-17", Status: models.StatusLate},
		{ID: "r4", StudentID: "S2", ClassID: "C1", Date: "2024-01-15", Status: models.StatusPresent},
	}
	if err := st.Attendance.InsertMany(ctx, records); err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	st := store.NewMemoryStore()
	seedDashboardFixtures(t, st)
	svc := NewDashboardService(st)

	stats, err := svc.Stats(context.Background(), &models.User{ID: "A1", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]int64{
		"total_users":    5,
		"total_classes":  3,
		"total_students": 2,
		"total_teachers": 1,
	}
	for k, v := range want {
		if stats[k] != v {
			t.Fatalf("stats[%q] = %v, want %d", k, stats[k], v)
		}
	}
}

func TestTeacherStats(t *testing.T) {
	st := store.NewMemoryStore()
	seedDashboardFixtures(t, st)
	svc := NewDashboardService(st)

	stats, err := svc.Stats(context.Background(), &models.User{ID: "T1", Role: models.RoleTeacher})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats["total_classes"] != 2 {
		t.Fatalf("expected 2 classes for T1, got %v", stats["total_classes"])
	}
	// C1 has 2 students, C2 has 1.
	if stats["total_students"] != 3 {
		t.Fatalf("expected 3 students across T1's classes, got %v", stats["total_students"])
	}
}

func TestStudentStats(t *testing.T) {
	st := store.NewMemoryStore()
	seedDashboardFixtures(t, st)
	svc := NewDashboardService(st)

	stats, err := svc.Stats(context.Background(), &models.User{ID: "S1", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats["total_attendance_records"] != int64(3) {
		t.Fatalf("expected 3 records, got %v", stats["total_attendance_records"])
	}
	if stats["present_count"] != int64(1) {
		t.Fatalf("expected 1 present, got %v", stats["present_count"])
	}
	// 1/3 rounds to two decimals.
	if stats["attendance_percentage"] != 33.33 {
		t.Fatalf("expected 33.33, got %v", stats["attendance_percentage"])
	}
}

func TestStudentStatsNoRecords(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewDashboardService(st)

	stats, err := svc.Stats(context.Background(), &models.User{ID: "S9", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats["attendance_percentage"] != 0.0 {
		t.Fatalf("expected percentage 0 with no records, got %v", stats["attendance_percentage"])
	}
	if stats["total_attendance_records"] != int64(0) {
		t.Fatalf("expected 0 records, got %v", stats["total_attendance_records"])
	}
}

func TestParentStats(t *testing.T) {
	st := store.NewMemoryStore()
	seedDashboardFixtures(t, st)
	svc := NewDashboardService(st)

	parent := &models.User{ID: "P1", Role: models.RoleParent, ParentChildIDs: models.StringList{"S1"}}
	stats, err := svc.Stats(context.Background(), parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats["children_count"] != 1 {
		t.Fatalf("expected children_count 1, got %v", stats["children_count"])
	}
	if stats["total_attendance_records"] != int64(3) {
		t.Fatalf("expected 3 records for S1, got %v", stats["total_attendance_records"])
	}
}

func TestParentStatsNoChildren(t *testing.T) {
	st := store.NewMemoryStore()
	seedDashboardFixtures(t, st)
	svc := NewDashboardService(st)

	parent := &models.User{ID: "P9", Role: models.RoleParent}
	stats, err := svc.Stats(context.Background(), parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 1 || stats["children_count"] != 0 {
		t.Fatalf("expected bare {children_count: 0}, got %v", stats)
	}
}
