// Package seed provisions the fixed demo users at process startup, before
// the server accepts traffic.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
)

// DemoUsers returns the two fixed demo identities, each with one
// pre-populated subject and no daily logs.
func DemoUsers() []*models.User {
	now := time.Now().UTC().Format(time.RFC3339)
	return []*models.User{
		{
			Name: "Deepak",
			Subjects: []models.Subject{{
				ID:          "deepak-subject-1",
				Name:        "Data Structures",
				Description: "Learning DSA fundamentals",
				Entries:     []bson.M{},
				CreatedAt:   now,
			}},
			DailyLogs: []bson.M{},
		},
		{
			Name: "Anjali",
			Subjects: []models.Subject{{
				ID:          "anjali-subject-1",
				Name:        "Web Development",
				Description: "Full stack development",
				Entries:     []bson.M{},
				CreatedAt:   now,
			}},
			DailyLogs: []bson.M{},
		},
	}
}

// EnsureDemoUsers creates each demo user unless it already exists. Running
// it against an already-seeded store performs no writes, so repeated boots
// never duplicate or reset the demo data.
func EnsureDemoUsers(ctx context.Context, repo *repository.UserRepository) error {
	for _, user := range DemoUsers() {
		created, err := repo.EnsureUser(ctx, user)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", user.Name, err)
		}
		if created {
			log.Printf("Created demo user: %s", user.Name)
		}
	}
	return nil
}
