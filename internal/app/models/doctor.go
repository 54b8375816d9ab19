package models

type Doctor struct {
	ID             string `json:"id" bson:"_id,omitempty"`
	UserID         string `json:"user_id" bson:"user_id"`
	Fullname       string `json:"fullname" bson:"fullname"`
	Email          string `json:"email" bson:"email"`
	Specialization string `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Fee            int64  `json:"fee" bson:"fee"`
	TimeModel      `bson:",inline"`
}
