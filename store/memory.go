package store

import (
	"context"
	"sync"

	"classtrack_go/models"
)

// NewMemoryStore returns a Store holding everything in process memory.
// It mirrors the gorm store's filter semantics and backs the package
// tests and local experiments; nothing about it is safe to persist.
func NewMemoryStore() *Store {
	return &Store{
		Users: &memCollection[models.User]{
			get: map[string]func(*models.User) interface{}{
				"id":         func(u *models.User) interface{} { return u.ID },
				"email":      func(u *models.User) interface{} { return u.Email },
				"role":       func(u *models.User) interface{} { return u.Role },
				"class_id":   func(u *models.User) interface{} { return u.ClassID },
				"student_id": func(u *models.User) interface{} { return u.StudentID },
			},
			set: map[string]func(*models.User, interface{}){
				"role":     func(u *models.User, v interface{}) { u.Role, _ = v.(string) },
				"class_id": func(u *models.User, v interface{}) { u.ClassID, _ = v.(string) },
			},
		},
		Sessions: &memCollection[models.Session]{
			get: map[string]func(*models.Session) interface{}{
				"id":            func(s *models.Session) interface{} { return s.ID },
				"user_id":       func(s *models.Session) interface{} { return s.UserID },
				"session_token": func(s *models.Session) interface{} { return s.SessionToken },
			},
		},
		Classes: &memCollection[models.Class]{
			get: map[string]func(*models.Class) interface{}{
				"id":          func(c *models.Class) interface{} { return c.ID },
				"name":        func(c *models.Class) interface{} { return c.Name },
				"teacher_ids": func(c *models.Class) interface{} { return c.TeacherIDs },
				"student_ids": func(c *models.Class) interface{} { return c.StudentIDs },
			},
			set: map[string]func(*models.Class, interface{}){
				"student_ids": func(c *models.Class, v interface{}) { c.StudentIDs, _ = v.(models.StringList) },
				"teacher_ids": func(c *models.Class, v interface{}) { c.TeacherIDs, _ = v.(models.StringList) },
			},
		},
		Attendance: &memCollection[models.AttendanceRecord]{
			get: map[string]func(*models.AttendanceRecord) interface{}{
				"id":         func(r *models.AttendanceRecord) interface{} { return r.ID },
				"class_id":   func(r *models.AttendanceRecord) interface{} { return r.ClassID },
				"date":       func(r *models.AttendanceRecord) interface{} { return r.Date },
				"student_id": func(r *models.AttendanceRecord) interface{} { return r.StudentID },
				"status":     func(r *models.AttendanceRecord) interface{} { return r.Status },
			},
		},
	}
}

type memCollection[T any] struct {
	mu    sync.RWMutex
	get   map[string]func(*T) interface{}
	set   map[string]func(*T, interface{})
	items []*T
}

func (c *memCollection[T]) matches(doc *T, filter Filter) bool {
	for col, want := range filter {
		get, ok := c.get[col]
		if !ok {
			return false
		}
		have := get(doc)
		switch w := want.(type) {
		case In:
			s, _ := have.(string)
			found := false
			for _, v := range w {
				if v == s {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case Contains:
			list, _ := have.(models.StringList)
			if !list.Contains(string(w)) {
				return false
			}
		default:
			if have != want {
				return false
			}
		}
	}
	return true
}

func (c *memCollection[T]) FindOne(_ context.Context, filter Filter) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, doc := range c.items {
		if c.matches(doc, filter) {
			out := *doc
			return &out, nil
		}
	}
	return nil, nil
}

func (c *memCollection[T]) FindMany(_ context.Context, filter Filter) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, doc := range c.items {
		if c.matches(doc, filter) {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (c *memCollection[T]) InsertOne(_ context.Context, doc *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *doc
	c.items = append(c.items, &copied)
	return nil
}

func (c *memCollection[T]) InsertMany(_ context.Context, docs []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range docs {
		copied := docs[i]
		c.items = append(c.items, &copied)
	}
	return nil
}

func (c *memCollection[T]) UpdateOne(_ context.Context, filter Filter, updates Updates) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, doc := range c.items {
		if !c.matches(doc, filter) {
			continue
		}
		for col, v := range updates {
			if set, ok := c.set[col]; ok {
				set(doc, v)
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (c *memCollection[T]) DeleteMany(_ context.Context, filter Filter) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var kept []*T
	var removed int64
	for _, doc := range c.items {
		if c.matches(doc, filter) {
			removed++
			continue
		}
		kept = append(kept, doc)
	}
	c.items = kept
	return removed, nil
}

func (c *memCollection[T]) Count(_ context.Context, filter Filter) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, doc := range c.items {
		if c.matches(doc, filter) {
			n++
		}
	}
	return n, nil
}
