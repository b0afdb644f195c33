package models

import "time"

// Comment belongs to exactly one article and dies with it. A comment left by a
// registered user also dies with that user; anonymous comments only carry a
// nickname. ReplyTo forms a reply tree; replies are expected to stay on the
// same article, though the store does not enforce that.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"not null" json:"content"`
	Nickname   string    `json:"nickname"`
	Reviewed   bool      `gorm:"not null;default:false" json:"reviewed"`
	IsAuthor   bool      `gorm:"not null;default:false" json:"is_author"`
	CreateTime time.Time `gorm:"autoCreateTime" json:"create_time"`
	IPAddress  string    `json:"-"`

	UserID    *string  `json:"user_id,omitempty"`
	User      *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ArticleID string   `gorm:"not null" json:"article_id"`
	Article   *Article `gorm:"foreignKey:ArticleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ReplyToID *uint    `json:"reply_to_id,omitempty"`
	ReplyTo   *Comment `gorm:"foreignKey:ReplyToID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// DisplayName is the name shown next to the comment: the author's account name
// with an author marker, or the visitor-supplied nickname.
func (c *Comment) DisplayName() string {
	if c.IsAuthor && c.User != nil {
		return "[Author]" + c.User.Name
	}
	return c.Nickname
}

// ToDict projects the comment for API responses. is_author appears only when
// set; reply_to is always present, null for top-level comments.
func (c *Comment) ToDict() *Dict {
	d := NewDict()
	d.Set("id", c.ID)
	d.Set("content", c.Content)
	d.Set("nickname", c.Nickname)
	if c.IsAuthor {
		d.Set("is_author", c.IsAuthor)
	}
	d.Set("create_time", c.CreateTime)
	d.Set("reply_to", c.ReplyToID)
	return d
}
