package tagsapi

type Tag struct {
	Title          string `json:"title"`
	AmountOfVideos int    `json:"amountOfVideos" validate:"gte=0"`
	Id             string `json:"id" validate:"required"`
}

// TagPage is the json-server pagination envelope returned by GET /tags.
type TagPage struct {
	First int   `json:"first"`
	Prev  *int  `json:"prev"`
	Next  *int  `json:"next"`
	Last  int   `json:"last"`
	Pages int   `json:"pages" validate:"gte=0"`
	Items int   `json:"items" validate:"gte=0"`
	Data  []Tag `json:"data" validate:"required,dive"`
}
