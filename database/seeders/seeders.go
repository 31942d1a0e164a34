package seeders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"classtrack_go/config"
	"classtrack_go/models"
	"classtrack_go/store"
)

// SeedBootstrapAdmin creates the admin account named by ADMIN_EMAIL when
// it does not exist yet. Development convenience only; in production
// admins are promoted with the makeadmin tool after their first login.
func SeedBootstrapAdmin(st *store.Store) {
	email := config.AppConfig.AdminEmail
	if email == "" {
		return
	}

	ctx := context.Background()
	existing, err := st.Users.FindOne(ctx, store.Filter{"email": email})
	if err != nil {
		logrus.WithError(err).Warn("bootstrap admin lookup failed")
		return
	}
	if existing != nil {
		return
	}

	admin := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      config.AppConfig.AdminName,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.Users.InsertOne(ctx, admin); err != nil {
		logrus.WithError(err).Warn("bootstrap admin creation failed")
		return
	}

	logrus.WithField("email", email).Info("Seeded bootstrap admin user")
}
