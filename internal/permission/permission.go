// Package permission implements the bitmask capability model used to gate
// administrative actions. The catalog is closed and append-only: a capability's
// bit position is part of the stored data format and must never be reassigned.
package permission

// Permission is a set of capability bits.
type Permission uint64

const (
	// PostArticle allows publishing new articles.
	PostArticle Permission = 1 << iota
	// EditArticle allows modifying existing articles.
	EditArticle
	// DeleteArticle allows removing articles.
	DeleteArticle
	// ManageCategory allows creating, renaming and deleting categories.
	ManageCategory
	// ReviewComment allows viewing and approving unreviewed comments.
	ReviewComment
	// DeleteComment allows removing comments.
	DeleteComment
	// ManageUser allows user administration (create, update, delete, grants).
	ManageUser
	// ViewEvent allows reading the audit event log.
	ViewEvent
)

// None is the empty capability set.
const None Permission = 0

// All is every capability in the catalog.
const All = PostArticle | EditArticle | DeleteArticle | ManageCategory |
	ReviewComment | DeleteComment | ManageUser | ViewEvent

// catalog lists every capability in declaration order. New capabilities are
// appended here with the next unused bit; entries are never reordered.
var catalog = []struct {
	name string
	bit  Permission
}{
	{"post_article", PostArticle},
	{"edit_article", EditArticle},
	{"delete_article", DeleteArticle},
	{"manage_category", ManageCategory},
	{"review_comment", ReviewComment},
	{"delete_comment", DeleteComment},
	{"manage_user", ManageUser},
	{"view_event", ViewEvent},
}

// Can reports whether the capability p is present in mask.
func Can(mask, p Permission) bool {
	return mask&p != 0
}

// Flag is one capability's on/off state within a mask.
type Flag struct {
	Name    string
	Enabled bool
}

// Flags enumerates every known capability in catalog order with its state in
// mask. The order is stable across calls and releases.
func Flags(mask Permission) []Flag {
	out := make([]Flag, len(catalog))
	for i, entry := range catalog {
		out[i] = Flag{Name: entry.name, Enabled: Can(mask, entry.bit)}
	}
	return out
}

// Identity is anything that can answer capability checks: an authenticated
// user, or the anonymous identity.
type Identity interface {
	Can(p Permission) bool
}

type anonymous struct{}

// Can on the anonymous identity is always false, whatever the capability.
func (anonymous) Can(Permission) bool { return false }

// Anonymous is the identity of unauthenticated callers.
var Anonymous Identity = anonymous{}
