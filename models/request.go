package models

type TripQuery struct {
	Origin      string `form:"origin" json:"origin" binding:"required"`
	Destination string `form:"destination" json:"destination" binding:"required"`
}
