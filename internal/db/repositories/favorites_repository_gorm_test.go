package repositories

import (
	"context"
	"testing"

	gormModels "evlanka/ampere/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(&gormModels.Favorite{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestFavoritesRepository_InsertAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFavoritesRepositoryGORM(db)
	ctx := context.Background()

	if err := repo.Insert(ctx, "driver@example.com", "42", `{"id":"42","name":"Kohuwala DC Fast Charger"}`); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	rows, err := repo.ListByUserEmail(ctx, "driver@example.com")
	if err != nil {
		t.Fatalf("ListByUserEmail failed: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].StationID != "42" {
		t.Errorf("Expected station 42, got %s", rows[0].StationID)
	}
	if rows[0].ID == "" {
		t.Error("Expected generated row id")
	}
	if rows[0].CreatedAt.IsZero() {
		t.Error("Expected creation timestamp")
	}
}

func TestFavoritesRepository_ListScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFavoritesRepositoryGORM(db)
	ctx := context.Background()

	_ = repo.Insert(ctx, "a@example.com", "1", `{"id":"1"}`)
	_ = repo.Insert(ctx, "b@example.com", "2", `{"id":"2"}`)

	rows, err := repo.ListByUserEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("ListByUserEmail failed: %v", err)
	}

	if len(rows) != 1 || rows[0].StationID != "1" {
		t.Errorf("Expected only user a's favorite, got %v", rows)
	}
}

func TestFavoritesRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFavoritesRepositoryGORM(db)
	ctx := context.Background()

	_ = repo.Insert(ctx, "driver@example.com", "42", `{"id":"42"}`)

	if err := repo.Delete(ctx, "driver@example.com", "42"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	rows, _ := repo.ListByUserEmail(ctx, "driver@example.com")
	if len(rows) != 0 {
		t.Errorf("Expected no rows after delete, got %d", len(rows))
	}
}

func TestFavoritesRepository_DeleteOnlyTargetsPair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFavoritesRepositoryGORM(db)
	ctx := context.Background()

	_ = repo.Insert(ctx, "a@example.com", "42", `{"id":"42"}`)
	_ = repo.Insert(ctx, "b@example.com", "42", `{"id":"42"}`)

	if err := repo.Delete(ctx, "a@example.com", "42"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	rows, _ := repo.ListByUserEmail(ctx, "b@example.com")
	if len(rows) != 1 {
		t.Errorf("Expected user b's favorite untouched, got %d rows", len(rows))
	}
}
