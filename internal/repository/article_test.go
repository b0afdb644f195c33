package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
	"inkwell/internal/permission"
)

func TestArticleRepository_IncrementReadCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := testCtx()
	repo := NewArticleRepository(db)

	alice := seedUser(t, db, "alice", "alice", permission.All)
	art := seedArticle(t, db, "post-1", "Post One", &alice.ID, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementReadCount(ctx, art.ID))
	}

	got, err := repo.GetByID(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ReadCount)
}

func TestArticleRepository_List_PublicOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := testCtx()
	repo := NewArticleRepository(db)

	alice := seedUser(t, db, "alice", "alice", permission.All)
	seedArticle(t, db, "public-1", "Public", &alice.ID, nil)
	hidden := &models.Article{
		ID:       "hidden-1",
		Title:    "Hidden",
		Public:   false,
		AuthorID: &alice.ID,
	}
	require.NoError(t, db.Create(hidden).Error)

	public, err := repo.List(ctx, ListArticlesOptions{PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "public-1", public[0].ID)

	all, err := repo.List(ctx, ListArticlesOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestArticleRepository_List_FilterByCategory(t *testing.T) {
	db := setupTestDB(t)
	ctx := testCtx()
	repo := NewArticleRepository(db)

	alice := seedUser(t, db, "alice", "alice", permission.All)
	tech := seedCategory(t, db, "tech", "Tech", &alice.ID)
	life := seedCategory(t, db, "life", "Life", &alice.ID)
	seedArticle(t, db, "post-1", "Tech Post", &alice.ID, &tech.ID)
	seedArticle(t, db, "post-2", "Life Post", &alice.ID, &life.ID)
	seedArticle(t, db, "post-3", "Uncategorized", &alice.ID, nil)

	got, err := repo.List(ctx, ListArticlesOptions{CategoryID: "tech"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "post-1", got[0].ID)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, "Tech", got[0].Category.Name)
	require.NotNil(t, got[0].Author)
	assert.Equal(t, "alice", got[0].Author.Name)
}

func TestArticleRepository_GetByIDFull_PreloadsRelations(t *testing.T) {
	db := setupTestDB(t)
	ctx := testCtx()
	repo := NewArticleRepository(db)

	alice := seedUser(t, db, "alice", "alice", permission.All)
	cat := seedCategory(t, db, "general", "General", &alice.ID)
	seedArticle(t, db, "post-1", "Post One", &alice.ID, &cat.ID)

	got, err := repo.GetByIDFull(ctx, "post-1")
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	require.NotNil(t, got.Category)
	assert.Equal(t, "alice", got.Author.Name)
	assert.Equal(t, "General", got.Category.Name)
}

func TestArticleRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	_, err := repo.GetByID(testCtx(), "ghost")
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
