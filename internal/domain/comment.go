package domain

// Comment is a single top-level video comment as returned by the comment
// source. Immutable once fetched.
type Comment struct {
	ID          string `json:"comment_id"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	PublishedAt string `json:"published_at"`
}
