package seed

import (
	"context"
	"testing"

	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/testutil"
)

func TestEnsureDemoUsers_Idempotent(t *testing.T) {
	t.Parallel()
	col := testutil.NewFakeUserCollection()
	repo := repository.NewWithCollection(col)
	ctx := context.Background()

	if err := EnsureDemoUsers(ctx, repo); err != nil {
		t.Fatalf("first seed run: %v", err)
	}
	firstWrites := col.Writes()
	if firstWrites != 2 {
		t.Errorf("first run performed %d writes, want 2", firstWrites)
	}

	if err := EnsureDemoUsers(ctx, repo); err != nil {
		t.Fatalf("second seed run: %v", err)
	}
	if col.Writes() != firstWrites {
		t.Errorf("second run performed %d extra writes, want 0", col.Writes()-firstWrites)
	}

	users := col.Users()
	if len(users) != 2 {
		t.Fatalf("store holds %d users, want 2", len(users))
	}
	if users[0].Name != "Deepak" || users[1].Name != "Anjali" {
		t.Errorf("users = [%s, %s], want [Deepak, Anjali]", users[0].Name, users[1].Name)
	}

	for _, u := range users {
		if len(u.Subjects) != 1 {
			t.Errorf("%s has %d subjects after reseed, want the 1 pre-seeded subject", u.Name, len(u.Subjects))
		}
		if len(u.DailyLogs) != 0 {
			t.Errorf("%s has %d daily logs, want 0", u.Name, len(u.DailyLogs))
		}
	}

	if users[0].Subjects[0].Name != "Data Structures" {
		t.Errorf("Deepak's subject = %q, want Data Structures", users[0].Subjects[0].Name)
	}
	if users[1].Subjects[0].ID != "anjali-subject-1" {
		t.Errorf("Anjali's subject id = %v, want anjali-subject-1", users[1].Subjects[0].ID)
	}
}

func TestEnsureDemoUsers_DoesNotTouchOtherUsers(t *testing.T) {
	t.Parallel()
	col := testutil.NewFakeUserCollection()
	repo := repository.NewWithCollection(col)
	ctx := context.Background()

	if _, err := repo.GetOrCreateUser(ctx, "Ravi"); err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	if err := EnsureDemoUsers(ctx, repo); err != nil {
		t.Fatalf("EnsureDemoUsers: %v", err)
	}

	names, err := repo.ListUserNames(ctx)
	if err != nil {
		t.Fatalf("ListUserNames: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("names = %v, want Ravi plus the two demo users", names)
	}
}
