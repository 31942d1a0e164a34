// Package store abstracts the four collections behind simple
// find/insert/update/delete operations so handlers never touch the
// database handle directly.
package store

import (
	"context"

	"classtrack_go/models"
)

// Filter maps column names to wanted values. Plain values compare for
// equality; In matches any of a set of ids; Contains matches a JSON
// list column that includes the id.
type Filter map[string]interface{}

// In matches rows whose column value is one of the listed ids.
type In []string

// Contains matches rows whose JSON list column includes the id.
type Contains string

// Updates maps column names to replacement values.
type Updates map[string]interface{}

// Collection is the store adapter for one collection. FindOne returns
// (nil, nil) when no document matches. UpdateOne updates at most one
// matching document and reports the matched count (1 even when the
// update changes nothing); DeleteMany reports how many were removed.
type Collection[T any] interface {
	FindOne(ctx context.Context, filter Filter) (*T, error)
	FindMany(ctx context.Context, filter Filter) ([]T, error)
	InsertOne(ctx context.Context, doc *T) error
	InsertMany(ctx context.Context, docs []T) error
	UpdateOne(ctx context.Context, filter Filter, updates Updates) (int64, error)
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Store bundles the application's collections.
type Store struct {
	Users      Collection[models.User]
	Sessions   Collection[models.Session]
	Classes    Collection[models.Class]
	Attendance Collection[models.AttendanceRecord]
}
