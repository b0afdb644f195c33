package models

import "time"

// Article is an authored post. SourceText holds the raw markup (TextType names
// the markup kind) and Content the rendered output. ReadCount only ever grows.
// Author and Category survive the deletion of the user/category they point at.
type Article struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	TextType      string    `json:"text_type"`
	SourceText    string    `json:"source_text"`
	Content       *string   `json:"content"`
	ReadCount     int       `gorm:"not null;default:0" json:"read_count"`
	PostTime      time.Time `gorm:"autoCreateTime" json:"post_time"`
	UpdateTime    time.Time `gorm:"autoUpdateTime" json:"update_time"`
	Public        bool      `gorm:"not null;default:true" json:"public"`
	IsCommentable bool      `gorm:"not null;default:true" json:"is_commentable"`

	CategoryID *string   `json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	AuthorID   *string   `json:"author_id,omitempty"`
	Author     *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// ToDict projects the article for API responses. The default projection never
// carries content or source; withContent adds the content key in its fixed
// position, withSrc appends text_type then source_text at the end. Author and
// category are nested only when the relation is present; absent relations omit
// the key rather than emitting null.
func (a *Article) ToDict(withContent, withSrc bool) *Dict {
	d := NewDict()
	d.Set("id", a.ID)
	d.Set("title", a.Title)
	if a.Author != nil {
		author := NewDict()
		author.Set("id", a.Author.ID)
		author.Set("name", a.Author.Name)
		d.Set("author", author)
	}
	if a.Category != nil {
		category := NewDict()
		category.Set("id", a.Category.ID)
		category.Set("name", a.Category.Name)
		d.Set("category", category)
	}
	if withContent {
		d.Set("content", a.Content)
	}
	d.Set("public", a.Public)
	d.Set("is_commentable", a.IsCommentable)
	d.Set("read_count", a.ReadCount)
	d.Set("post_time", a.PostTime)
	d.Set("update_time", a.UpdateTime)
	if withSrc {
		d.Set("text_type", a.TextType)
		d.Set("source_text", a.SourceText)
	}
	return d
}
