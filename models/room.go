package models

// Room is a bookable hotel room.
type Room struct {
	Name      string `bson:"name" json:"name"`
	Capacity  int    `bson:"capacity" json:"capacity"`
	Available bool   `bson:"available" json:"available"`
}
