package models

// Page is the subset of the Graph API page object the extractor reads.
type Page struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Paging is the cursor block attached to every Graph API collection.
type Paging struct {
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// PostPage is one result page of the /{page_id}/posts edge.
type PostPage struct {
	Data   []GraphPost `json:"data"`
	Paging *Paging     `json:"paging,omitempty"`
}

// GraphPost is a raw post as returned by the Graph API. Optional objects are
// pointers so an absent field can be told apart from a zero value.
type GraphPost struct {
	ID           string   `json:"id"`
	CreatedTime  string   `json:"created_time"`
	Message      *string  `json:"message,omitempty"`
	PermalinkURL string   `json:"permalink_url"`
	FullPicture  *string  `json:"full_picture,omitempty"`
	Shares       *Shares  `json:"shares,omitempty"`
	Reactions    *Insight `json:"post_reactions_by_type_total,omitempty"`
}

type Shares struct {
	Count int `json:"count"`
}

// Insight is the envelope of a post insight metric. For
// post_reactions_by_type_total the first value maps reaction type to count.
type Insight struct {
	Data []InsightMetric `json:"data"`
}

type InsightMetric struct {
	Name   string         `json:"name,omitempty"`
	Period string         `json:"period,omitempty"`
	Values []InsightValue `json:"values"`
}

type InsightValue struct {
	Value map[string]int `json:"value"`
}

// GraphComment is a raw comment from the /{post_id}/comments edge.
type GraphComment struct {
	ID           string      `json:"id"`
	CreatedTime  string      `json:"created_time"`
	PermalinkURL string      `json:"permalink_url"`
	From         *Author     `json:"from,omitempty"`
	Parent       *CommentRef `json:"parent,omitempty"`
	Message      string      `json:"message"`
	LikeCount    int         `json:"like_count"`
}

type Author struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type CommentRef struct {
	ID string `json:"id"`
}
