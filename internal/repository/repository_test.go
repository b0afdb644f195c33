package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/internal/models"
	"inkwell/internal/permission"
)

// setupTestDB opens a private in-memory database with foreign key enforcement
// on, so constraint and cascade behavior is exercised for real instead of
// being mocked away. A single connection keeps the in-memory store alive for
// the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.Comment{},
		&models.Event{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name string, mask permission.Permission) *models.User {
	t.Helper()
	u := &models.User{ID: id, Name: name, Permission: mask}
	u.SetPassword("password", "test-salt")
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCategory(t *testing.T, db *gorm.DB, id, name string, createdBy *string) *models.Category {
	t.Helper()
	c := &models.Category{ID: id, Name: name, CreatedByID: createdBy}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedArticle(t *testing.T, db *gorm.DB, id, title string, authorID, categoryID *string) *models.Article {
	t.Helper()
	a := &models.Article{
		ID:            id,
		Title:         title,
		TextType:      "markdown",
		SourceText:    "# " + title,
		Public:        true,
		IsCommentable: true,
		AuthorID:      authorID,
		CategoryID:    categoryID,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func seedComment(t *testing.T, db *gorm.DB, articleID string, userID *string, content string) *models.Comment {
	t.Helper()
	c := &models.Comment{
		Content:   content,
		Nickname:  "tester",
		Reviewed:  true,
		ArticleID: articleID,
		UserID:    userID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func testCtx() context.Context { return context.Background() }

func ptr[T any](v T) *T { return &v }
