package models

import "time"

// Category groups articles. Deleting the creating user keeps the category and
// nulls the reference; deleting a category keeps its articles (their category
// reference is nulled by the store).
type Category struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	CreateTime  time.Time `gorm:"autoCreateTime" json:"create_time"`
	CreatedByID *string   `json:"created_by_id,omitempty"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	// ArticleCount is populated only by the listing query that aggregates it.
	// It is never stored and never probed for; absent means "not computed".
	ArticleCount *int64 `gorm:"-" json:"-"`
}

// ToDict projects the category for API responses. The article_count key is
// emitted only when the query path computed the aggregate.
func (c *Category) ToDict() *Dict {
	d := NewDict()
	d.Set("id", c.ID)
	d.Set("name", c.Name)
	if c.ArticleCount != nil {
		d.Set("article_count", *c.ArticleCount)
	}
	return d
}
