package controllers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"classtrack_go/models"
	"classtrack_go/store"
)

func TestCreateClass(t *testing.T) {
	st := store.NewMemoryStore()
	app := newTestApp(st, &fakeExchanger{})
	adminToken := seedUserWithSession(t, st, "A1", models.RoleAdmin)

	body := map[string]string{"name": "12-A Commerce", "division": "A", "stream": "Commerce"}
	resp := doJSON(t, app, http.MethodPost, "/api/classes/", adminToken, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var class models.Class
	decodeBody(t, resp, &class)
	if class.Grade != "12" {
		t.Fatalf("expected default grade 12, got %q", class.Grade)
	}
	if class.StudentIDs == nil || class.TeacherIDs == nil {
		t.Fatal("expected empty roster lists, not nil")
	}

	resp = doJSON(t, app, http.MethodPost, "/api/classes/", adminToken, map[string]string{"name": "12-B"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing division/stream, got %d", resp.StatusCode)
	}
}

func TestGetClassesRequiresAuth(t *testing.T) {
	st := store.NewMemoryStore()
	app := newTestApp(st, &fakeExchanger{})
	studentToken := seedUserWithSession(t, st, "S1", models.RoleStudent)

	resp := doJSON(t, app, http.MethodGet, "/api/classes/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/classes/", studentToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for student, got %d", resp.StatusCode)
	}
	var classes []models.Class
	decodeBody(t, resp, &classes)
	if classes == nil {
		t.Fatal("expected empty array, not null")
	}
}

func TestAssignStudent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	app := newTestApp(st, &fakeExchanger{})
	adminToken := seedUserWithSession(t, st, "A1", models.RoleAdmin)
	seedUserWithSession(t, st, "S1", models.RoleStudent)

	class := &models.Class{
		ID:         "C1",
		Name:       "12-A",
		StudentIDs: models.StringList{},
		TeacherIDs: models.StringList{},
		CreatedAt:  time.Now().UTC(),
	}
	if err := st.Classes.InsertOne(ctx, class); err != nil {
		t.Fatalf("seed class: %v", err)
	}

	resp := doJSON(t, app, http.MethodPut, "/api/classes/C1/students", adminToken, map[string]string{"student_id": "S1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// Both sides of the link must be updated.
	got, err := st.Classes.FindOne(ctx, store.Filter{"id": "C1"})
	if err != nil || got == nil {
		t.Fatalf("find class: class=%v err=%v", got, err)
	}
	if !got.StudentIDs.Contains("S1") {
		t.Fatalf("expected S1 in roster, got %v", got.StudentIDs)
	}
	user, err := st.Users.FindOne(ctx, store.Filter{"id": "S1"})
	if err != nil || user == nil {
		t.Fatalf("find user: user=%v err=%v", user, err)
	}
	if user.ClassID != "C1" {
		t.Fatalf("expected class_id C1 on user, got %q", user.ClassID)
	}

	// Assigning again must not duplicate the roster entry.
	resp = doJSON(t, app, http.MethodPut, "/api/classes/C1/students", adminToken, map[string]string{"student_id": "S1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on re-assign, got %d", resp.StatusCode)
	}
	got, err = st.Classes.FindOne(ctx, store.Filter{"id": "C1"})
	if err != nil || got == nil {
		t.Fatalf("find class: class=%v err=%v", got, err)
	}
	if len(got.StudentIDs) != 1 {
		t.Fatalf("expected roster of 1 after re-assign, got %v", got.StudentIDs)
	}

	resp = doJSON(t, app, http.MethodPut, "/api/classes/C404/students", adminToken, map[string]string{"student_id": "S1"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown class, got %d", resp.StatusCode)
	}
}

func TestAssignStudentRequiresAdmin(t *testing.T) {
	st := store.NewMemoryStore()
	app := newTestApp(st, &fakeExchanger{})
	teacherToken := seedUserWithSession(t, st, "T1", models.RoleTeacher)

	resp := doJSON(t, app, http.MethodPut, "/api/classes/C1/students", teacherToken, map[string]string{"student_id": "S1"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for teacher, got %d", resp.StatusCode)
	}
}
