package repository

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tastebook/tastebook/internal/user/domain"
)

func setupTestDB(t *testing.T) *GormUserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	repo := NewGormUserRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return repo
}

func registerUser(t *testing.T, repo *GormUserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  "x",
		FirstName: "First",
		LastName:  "Last",
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("creating user %q: %v", username, err)
	}
	return user
}

func TestFindAllRegistrationOrder(t *testing.T) {
	repo := setupTestDB(t)

	// usernames deliberately out of lexical order
	registerUser(t, repo, "zoe")
	registerUser(t, repo, "alice")
	registerUser(t, repo, "mallory")

	users, err := repo.FindAll(0, 0)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}

	got := make([]string, len(users))
	for i, u := range users {
		got[i] = u.Username
	}
	want := []string{"zoe", "alice", "mallory"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("listing order = %v, want registration order %v", got, want)
		}
	}
}

func TestFindAllPagination(t *testing.T) {
	repo := setupTestDB(t)
	for i := 0; i < 5; i++ {
		registerUser(t, repo, fmt.Sprintf("user%d", i))
	}

	page, err := repo.FindAll(2, 2)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d users, want 2", len(page))
	}
	if page[0].Username != "user2" || page[1].Username != "user3" {
		t.Errorf("page = %s, %s; want user2, user3", page[0].Username, page[1].Username)
	}
}
