package models

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// TagsQuery is the json-server style query accepted by GET /tags.
type TagsQuery struct {
	Page    int    `form:"_page" binding:"omitempty,min=1"`
	PerPage int    `form:"_per_page" binding:"omitempty,min=1,max=100"`
	Title   string `form:"title" binding:"max=255"`
}

func (q TagsQuery) Normalize() TagsQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return q
}
