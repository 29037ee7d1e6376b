package models

import "errors"

// ErrInvalidRecord is returned when a record breaks the output table contract.
var ErrInvalidRecord = errors.New("invalid record")

const (
	SourceFacebook = "facebook"
	// Missing marks a field that has not been analyzed yet. It is distinct
	// from an empty value.
	Missing = "missing"
	// UnknownAuthor is used when the API omits the commenter reference.
	UnknownAuthor = "N/A"
)

// Columns is the fixed header shared by the posts and comments tables.
var Columns = []string{
	"id",
	"image_url",
	"title",
	"sentiment",
	"react_haha",
	"react_anger",
	"parent_id",
	"resource",
	"react_share",
	"content",
	"react_sorry",
	"language",
	"author",
	"url",
	"source",
	"react_wow",
	"react_like",
	"react_love",
	"published_at",
	"in_reply_to",
}

// Record is one row of the posts or comments table. Nil pointers render as
// blank cells.
type Record struct {
	ID          string  `json:"id" validate:"required"`
	ImageURL    *string `json:"image_url"`
	Title       *string `json:"title"`
	Sentiment   string  `json:"sentiment" validate:"required,eq=missing"`
	ReactHaha   *int    `json:"react_haha" validate:"omitempty,gte=0"`
	ReactAnger  *int    `json:"react_anger" validate:"omitempty,gte=0"`
	ParentID    *string `json:"parent_id"`
	Resource    string  `json:"resource"`
	ReactShare  *int    `json:"react_share" validate:"omitempty,gte=0"`
	Content     string  `json:"content"`
	ReactSorry  *int    `json:"react_sorry" validate:"omitempty,gte=0"`
	Language    string  `json:"language" validate:"required,eq=missing"`
	Author      string  `json:"author"`
	URL         string  `json:"url"`
	Source      string  `json:"source" validate:"required"`
	ReactWow    *int    `json:"react_wow" validate:"omitempty,gte=0"`
	ReactLike   *int    `json:"react_like" validate:"omitempty,gte=0"`
	ReactLove   *int    `json:"react_love" validate:"omitempty,gte=0"`
	PublishedAt string  `json:"published_at" validate:"required,endswith=Z"`
	InReplyTo   *string `json:"in_reply_to"`
}
