// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/permission"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumArticles  int
	NumComments  int
	PasswordSalt string
	ShouldClean  bool
}

var categoryNames = []string{
	"Programming", "Linux", "Databases", "Networking", "Essays",
	"Travel", "Photography", "Reading Notes", "Announcements",
}

var textTypes = []string{"markdown", "rst", "html"}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// New creates a Seeder bound to the provided Gorm DB.
func New(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds users, categories, articles and comments.
func (s *Seeder) Run() error {
	if s.opts.ShouldClean {
		if err := s.clean(); err != nil {
			return err
		}
	}

	users, err := s.seedUsers()
	if err != nil {
		return err
	}
	categories, err := s.seedCategories(users)
	if err != nil {
		return err
	}
	articles, err := s.seedArticles(users, categories)
	if err != nil {
		return err
	}
	if err := s.seedComments(users, articles); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d categories, %d articles", len(users), len(categories), len(articles))
	return nil
}

func (s *Seeder) clean() error {
	// Delete in dependency order; comments and events cascade from their parents.
	for _, model := range []any{
		&models.Comment{}, &models.Event{}, &models.Article{},
		&models.Category{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clean table: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers() ([]models.User, error) {
	n := s.opts.NumUsers
	if n <= 0 {
		n = 10
	}

	users := make([]models.User, 0, n+1)

	// One full-capability admin account for local exploration.
	admin := models.User{
		ID:         "admin",
		Name:       "admin",
		Permission: permission.All,
	}
	admin.SetPassword("password", s.opts.PasswordSalt)
	users = append(users, admin)

	seen := map[string]bool{"admin": true}
	for i := 0; i < n; i++ {
		name := strings.ToLower(gofakeit.Username())
		if seen[name] {
			name = fmt.Sprintf("%s%d", name, i)
		}
		seen[name] = true

		user := models.User{
			ID:         uuid.NewString(),
			Name:       name,
			Permission: permission.PostArticle | permission.EditArticle,
		}
		user.SetPassword(gofakeit.Password(true, true, true, false, false, 12), s.opts.PasswordSalt)
		users = append(users, user)
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	return users, nil
}

func (s *Seeder) seedCategories(users []models.User) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		owner := users[s.rng.Intn(len(users))].ID
		categories = append(categories, models.Category{
			ID:          strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			Name:        name,
			CreatedByID: &owner,
		})
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}
	return categories, nil
}

func (s *Seeder) seedArticles(users []models.User, categories []models.Category) ([]models.Article, error) {
	n := s.opts.NumArticles
	if n <= 0 {
		n = 40
	}

	articles := make([]models.Article, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))].ID
		source := gofakeit.Paragraph(3, 5, 12, "\n\n")
		rendered := "<p>" + source + "</p>"

		article := models.Article{
			ID:            uuid.NewString(),
			Title:         gofakeit.Sentence(6),
			TextType:      textTypes[s.rng.Intn(len(textTypes))],
			SourceText:    source,
			Content:       &rendered,
			ReadCount:     s.rng.Intn(5000),
			Public:        s.rng.Intn(10) > 1,
			IsCommentable: s.rng.Intn(10) > 0,
			AuthorID:      &author,
		}
		if s.rng.Intn(4) > 0 {
			article.CategoryID = &categories[s.rng.Intn(len(categories))].ID
		}
		articles = append(articles, article)
	}

	if err := s.db.Create(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to seed articles: %w", err)
	}
	return articles, nil
}

func (s *Seeder) seedComments(users []models.User, articles []models.Article) error {
	n := s.opts.NumComments
	if n <= 0 {
		n = 120
	}

	for i := 0; i < n; i++ {
		article := articles[s.rng.Intn(len(articles))]
		if !article.IsCommentable {
			continue
		}

		comment := models.Comment{
			Content:   gofakeit.Sentence(15),
			Nickname:  gofakeit.FirstName(),
			Reviewed:  s.rng.Intn(4) > 0,
			IPAddress: gofakeit.IPv4Address(),
			ArticleID: article.ID,
		}
		// Some comments come from registered users, sometimes the author.
		if s.rng.Intn(3) == 0 {
			user := users[s.rng.Intn(len(users))]
			comment.UserID = &user.ID
			if article.AuthorID != nil && user.ID == *article.AuthorID {
				comment.IsAuthor = true
				comment.Reviewed = true
			}
		}

		if err := s.db.Create(&comment).Error; err != nil {
			return fmt.Errorf("failed to seed comment: %w", err)
		}
	}
	return nil
}
