package extractor

import (
	"github.com/pauljones0/fb-page-extractor/internal/models"
	"github.com/pauljones0/fb-page-extractor/internal/util"
)

// reactionTypes are the keys of post_reactions_by_type_total, in the order
// they are read.
var reactionTypes = []string{"like", "love", "wow", "haha", "sorry", "anger"}

// TransformPosts maps raw posts to table records, preserving order. The page
// name is both the resource and the author of every post.
func TransformPosts(posts []models.GraphPost, pageName string) []models.Record {
	records := make([]models.Record, 0, len(posts))
	for _, p := range posts {
		records = append(records, TransformPost(p, pageName))
	}
	return records
}

func TransformPost(p models.GraphPost, pageName string) models.Record {
	r := models.Record{
		ID:          p.ID,
		Source:      models.SourceFacebook,
		Resource:    pageName,
		URL:         p.PermalinkURL,
		Content:     "",
		PublishedAt: util.NormalizeTimestamp(p.CreatedTime),
		Author:      pageName,
		ImageURL:    util.StringPtr(""),
		Language:    models.Missing,
		Sentiment:   models.Missing,
		ReactShare:  util.IntPtr(0),
	}
	if p.Message != nil {
		r.Content = *p.Message
	}
	if p.FullPicture != nil {
		r.ImageURL = util.StringPtr(*p.FullPicture)
	}
	if p.Shares != nil {
		r.ReactShare = util.IntPtr(p.Shares.Count)
	}

	// Reaction columns stay nil unless the insight was returned: "no data"
	// and "zero reactions" are different things downstream.
	if p.Reactions != nil {
		counts := reactionCounts(p.Reactions)
		r.ReactLike = util.IntPtr(counts["like"])
		r.ReactLove = util.IntPtr(counts["love"])
		r.ReactWow = util.IntPtr(counts["wow"])
		r.ReactHaha = util.IntPtr(counts["haha"])
		r.ReactSorry = util.IntPtr(counts["sorry"])
		r.ReactAnger = util.IntPtr(counts["anger"])
	}
	return r
}

// reactionCounts reads the first value of the first metric. Types missing
// from the payload count as zero.
func reactionCounts(in *models.Insight) map[string]int {
	counts := make(map[string]int, len(reactionTypes))
	for _, t := range reactionTypes {
		counts[t] = 0
	}
	if len(in.Data) == 0 || len(in.Data[0].Values) == 0 {
		return counts
	}
	for t, n := range in.Data[0].Values[0].Value {
		if _, ok := counts[t]; ok {
			counts[t] = n
		}
	}
	return counts
}

// TransformComment maps one raw comment of post postID. Comment ids and
// parent comment ids are namespaced with the page id; a top-level comment
// points at the raw post id.
func TransformComment(c models.GraphComment, pageID, pageName, postID string) models.Record {
	r := models.Record{
		ID:          util.CompositeID(pageID, c.ID),
		Source:      models.SourceFacebook,
		Resource:    pageName,
		URL:         c.PermalinkURL,
		Content:     c.Message,
		ReactLike:   util.IntPtr(c.LikeCount),
		PublishedAt: util.NormalizeTimestamp(c.CreatedTime),
		Author:      models.UnknownAuthor,
		Language:    models.Missing,
		Sentiment:   models.Missing,
	}
	if c.From != nil {
		r.Author = c.From.Name
	}
	if c.Parent != nil {
		r.InReplyTo = util.StringPtr(util.CompositeID(pageID, c.Parent.ID))
	} else {
		r.InReplyTo = util.StringPtr(postID)
	}
	return r
}
