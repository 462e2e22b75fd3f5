package entity

import (
	"time"
)

// Enrollment is the relation between a User and a Course. At most one
// row may exist per (user, course) pair; duplicates are a conflict.
type Enrollment struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	CourseID   string    `bson:"course_id" json:"course_id"`
	Progress   float64   `bson:"progress" json:"progress"`
	EnrolledAt time.Time `bson:"enrolled_at" json:"enrolled_at"`
}
