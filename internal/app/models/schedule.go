package models

import "time"

// Schedule is a single bookable time slot. StartTime and EndTime are full
// datetimes; the calendar date is part of the slot identity.
type Schedule struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
	TimeModel `bson:",inline"`
}
