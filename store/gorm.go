package store

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"classtrack_go/models"
)

// NewGormStore returns a Store backed by a GORM connection.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:      &gormCollection[models.User]{db: db},
		Sessions:   &gormCollection[models.Session]{db: db},
		Classes:    &gormCollection[models.Class]{db: db},
		Attendance: &gormCollection[models.AttendanceRecord]{db: db},
	}
}

type gormCollection[T any] struct {
	db *gorm.DB
}

func (c *gormCollection[T]) query(ctx context.Context, filter Filter) *gorm.DB {
	tx := c.db.WithContext(ctx)
	for col, want := range filter {
		switch v := want.(type) {
		case In:
			tx = tx.Where(col+" IN ?", []string(v))
		case Contains:
			tx = tx.Where("JSON_CONTAINS("+col+", ?)", strconv.Quote(string(v)))
		default:
			tx = tx.Where(col+" = ?", want)
		}
	}
	return tx
}

func (c *gormCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	err := c.query(ctx, filter).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *gormCollection[T]) FindMany(ctx context.Context, filter Filter) ([]T, error) {
	var docs []T
	if err := c.query(ctx, filter).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *gormCollection[T]) InsertOne(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Create(doc).Error
}

func (c *gormCollection[T]) InsertMany(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).Create(&docs).Error
}

func (c *gormCollection[T]) UpdateOne(ctx context.Context, filter Filter, updates Updates) (int64, error) {
	// RowsAffected counts matched rows because the DSN sets
	// clientFoundRows; a no-op update on an existing row still returns 1.
	res := c.query(ctx, filter).Model(new(T)).Limit(1).Updates(map[string]interface{}(updates))
	return res.RowsAffected, res.Error
}

func (c *gormCollection[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	res := c.query(ctx, filter).Delete(new(T))
	return res.RowsAffected, res.Error
}

func (c *gormCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var n int64
	err := c.query(ctx, filter).Model(new(T)).Count(&n).Error
	return n, err
}
