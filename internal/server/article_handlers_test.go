package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/permission"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newArticleApp wires GetArticle with mock storage and an optional acting user.
func newArticleApp(userRepo *MockUserRepository, articleRepo *MockArticleRepository, actingUser string) *fiber.App {
	s := &Server{
		config:      testConfig(),
		userRepo:    userRepo,
		articleRepo: articleRepo,
	}
	s.articleService = service.NewArticleService(articleRepo)

	app := fiber.New()
	app.Get("/api/articles/:id",
		func(c *fiber.Ctx) error {
			if actingUser != "" {
				c.Locals("userID", actingUser)
			}
			return c.Next()
		},
		s.GetArticle)
	return app
}

func getArticle(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func publicArticle(authorID *string) *models.Article {
	return &models.Article{
		ID:         "post-1",
		Title:      "Post One",
		TextType:   "markdown",
		SourceText: "# secret source",
		Public:     true,
		AuthorID:   authorID,
	}
}

func TestGetArticle_AnonymousPublicRead(t *testing.T) {
	userRepo := new(MockUserRepository)
	articleRepo := new(MockArticleRepository)
	app := newArticleApp(userRepo, articleRepo, "")

	art := publicArticle(nil)
	articleRepo.On("GetByID", mock.Anything, "post-1").Return(art, nil)
	articleRepo.On("GetByIDFull", mock.Anything, "post-1").Return(art, nil)
	articleRepo.On("IncrementReadCount", mock.Anything, "post-1").Return(nil).Once()

	resp, body := getArticle(t, app, "/api/articles/post-1?with_src=true")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Post One", body["title"])
	assert.NotContains(t, body, "source_text", "source is never exposed to anonymous readers")
	articleRepo.AssertExpectations(t)
}

func TestGetArticle_HiddenLooksAbsent(t *testing.T) {
	userRepo := new(MockUserRepository)
	articleRepo := new(MockArticleRepository)
	app := newArticleApp(userRepo, articleRepo, "")

	hidden := publicArticle(nil)
	hidden.Public = false
	articleRepo.On("GetByID", mock.Anything, "post-1").Return(hidden, nil)

	resp, body := getArticle(t, app, "/api/articles/post-1")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "error")
	articleRepo.AssertNotCalled(t, "GetByIDFull", mock.Anything, mock.Anything)
}

func TestGetArticle_AuthorSeesHiddenWithSource(t *testing.T) {
	userRepo := new(MockUserRepository)
	articleRepo := new(MockArticleRepository)
	app := newArticleApp(userRepo, articleRepo, "alice")

	// Author without any edit capability still sees their own hidden article.
	userRepo.On("GetByID", mock.Anything, "alice").
		Return(&models.User{ID: "alice", Name: "alice"}, nil)

	alice := "alice"
	hidden := publicArticle(&alice)
	hidden.Public = false
	articleRepo.On("GetByID", mock.Anything, "post-1").Return(hidden, nil)
	articleRepo.On("GetByIDFull", mock.Anything, "post-1").Return(hidden, nil)

	resp, body := getArticle(t, app, "/api/articles/post-1?with_src=true")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "# secret source", body["source_text"])
	// Author previews are not counted reads.
	articleRepo.AssertNotCalled(t, "IncrementReadCount", mock.Anything, mock.Anything)
}

func TestGetArticle_EditorPreviewDoesNotCount(t *testing.T) {
	userRepo := new(MockUserRepository)
	articleRepo := new(MockArticleRepository)
	app := newArticleApp(userRepo, articleRepo, "mod")

	userRepo.On("GetByID", mock.Anything, "mod").
		Return(&models.User{ID: "mod", Name: "mod", Permission: permission.EditArticle}, nil)

	bob := "bob"
	art := publicArticle(&bob)
	articleRepo.On("GetByID", mock.Anything, "post-1").Return(art, nil)
	articleRepo.On("GetByIDFull", mock.Anything, "post-1").Return(art, nil)

	resp, _ := getArticle(t, app, "/api/articles/post-1")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	articleRepo.AssertNotCalled(t, "IncrementReadCount", mock.Anything, mock.Anything)
}

func TestGetArticle_WithContent(t *testing.T) {
	userRepo := new(MockUserRepository)
	articleRepo := new(MockArticleRepository)
	app := newArticleApp(userRepo, articleRepo, "")

	rendered := "<h1>hello</h1>"
	art := publicArticle(nil)
	art.Content = &rendered
	articleRepo.On("GetByID", mock.Anything, "post-1").Return(art, nil)
	articleRepo.On("GetByIDFull", mock.Anything, "post-1").Return(art, nil)
	articleRepo.On("IncrementReadCount", mock.Anything, "post-1").Return(nil)

	_, withContent := getArticle(t, app, "/api/articles/post-1?with_content=true")
	assert.Equal(t, rendered, withContent["content"])

	_, without := getArticle(t, app, "/api/articles/post-1")
	assert.NotContains(t, without, "content")
}
