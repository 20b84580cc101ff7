package models

type NewTag struct {
	Title          string `json:"title" binding:"required,min=1,max=255"`
	AmountOfVideos int    `json:"amountOfVideos" binding:"gte=0"`
}
