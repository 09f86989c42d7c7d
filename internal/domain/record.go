package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the document store.
const (
	CollectionProjects = "projects"
	CollectionPosts    = "posts"
	CollectionComments = "comments"
	CollectionUsers    = "users"
	CollectionCounters = "counters"
	CollectionAdmins   = "admins"
)

// Counter fields used with RecordStore.Increment.
const (
	FieldViews        = "views"
	FieldLikes        = "likes"
	FieldCommentCount = "comment_count"
)

// UncategorizedBucket collects records that carry no category.
const UncategorizedBucket = "uncategorized"

// Record is what the listing pipeline needs to know about a document.
type Record interface {
	RecordID() string
	CreatedTime() time.Time
	CategoryName() string
	StatusName() string
	// SearchText returns title, body and author display name.
	SearchText() []string
	TagList() []string
	LikeCount() int
	ViewCount() int
}

// Record lifecycle status
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

// API key requirement of a showcased project
const (
	APIKeyRequired = "required"
	APIKeyOptional = "optional"
	APIKeyNone     = "none"
)

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" binding:"required"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Status      string             `bson:"status" json:"status"`
	AuthorID    string             `bson:"author_id" json:"author_id"`
	AuthorName  string             `bson:"author_name" json:"author_name"`
	Tags        []string           `bson:"tags" json:"tags"`

	// 技術棧
	Technologies      []string `bson:"technologies" json:"technologies"`
	Tools             []string `bson:"tools" json:"tools"`
	APIKeyRequirement string   `bson:"api_key_requirement" json:"api_key_requirement"`

	Likes int `bson:"likes" json:"likes"`
	Views int `bson:"views" json:"views"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (p Project) RecordID() string       { return p.ID.Hex() }
func (p Project) CreatedTime() time.Time { return p.CreatedAt }
func (p Project) CategoryName() string   { return p.Category }
func (p Project) StatusName() string     { return p.Status }
func (p Project) SearchText() []string   { return []string{p.Title, p.Description, p.AuthorName} }
func (p Project) TagList() []string      { return p.Tags }
func (p Project) LikeCount() int         { return p.Likes }
func (p Project) ViewCount() int         { return p.Views }

// Post is a discussion board entry. CommentCount is denormalized and
// maintained by increments when comments are created.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" binding:"required"`
	Content      string             `bson:"content" json:"content"`
	Category     string             `bson:"category" json:"category"`
	Status       string             `bson:"status" json:"status"`
	AuthorID     string             `bson:"author_id" json:"author_id"`
	AuthorName   string             `bson:"author_name" json:"author_name"`
	Tags         []string           `bson:"tags" json:"tags"`
	Likes        int                `bson:"likes" json:"likes"`
	Views        int                `bson:"views" json:"views"`
	CommentCount int                `bson:"comment_count" json:"comment_count"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

func (p Post) RecordID() string       { return p.ID.Hex() }
func (p Post) CreatedTime() time.Time { return p.CreatedAt }
func (p Post) CategoryName() string   { return p.Category }
func (p Post) StatusName() string     { return p.Status }
func (p Post) SearchText() []string   { return []string{p.Title, p.Content, p.AuthorName} }
func (p Post) TagList() []string      { return p.Tags }
func (p Post) LikeCount() int         { return p.Likes }
func (p Post) ViewCount() int         { return p.Views }

type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID     string             `bson:"post_id" json:"post_id"`
	Content    string             `bson:"content" json:"content" binding:"required"`
	AuthorID   string             `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name" binding:"required"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserActivity is a registered user row.
type UserActivity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	Email       string             `bson:"email" json:"email"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	LastLoginAt time.Time          `bson:"last_login_at" json:"last_login_at"`
}
