package models

type Patient struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	UserID    string `json:"user_id" bson:"user_id"`
	Fullname  string `json:"fullname" bson:"fullname"`
	Email     string `json:"email" bson:"email"`
	TimeModel `bson:",inline"`
}
