package database

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/domain"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/models"
)

// SeedAdmin creates the dashboard admin account on first boot. Skipped when
// any user already exists or when ADMIN_EMAIL/ADMIN_PASSWORD are unset.
func SeedAdmin(ctx context.Context, db *mongo.Database, log *zap.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	users := db.Collection("users")
	n, err := users.CountDocuments(ctx, bson.M{})
	if err != nil || n > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("admin seed: hash failed", zap.Error(err))
		return
	}
	now := time.Now()
	_, err = users.InsertOne(ctx, &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Error("admin seed failed", zap.Error(err))
		return
	}
	log.Info("admin account seeded", zap.String("email", email))
}
