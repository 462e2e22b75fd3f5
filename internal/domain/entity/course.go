package entity

import (
	"time"
)

// CourseLevel represents the difficulty tier of a course.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "Beginner"
	CourseLevelIntermediate CourseLevel = "Intermediate"
	CourseLevelAdvanced     CourseLevel = "Advanced"
)

// Course represents one catalog entry.
//
// Invariants: Price >= 0, Rating in [0,5], StudentsEnrolled >= 0 and
// mutated only through enrollment operations, ID immutable once created.
type Course struct {
	ID               string      `bson:"_id" json:"id"`
	Title            string      `bson:"title" json:"title"`
	Description      string      `bson:"description" json:"description"`
	Instructor       string      `bson:"instructor" json:"instructor"`
	Duration         string      `bson:"duration" json:"duration"`
	Category         string      `bson:"category" json:"category"`
	Level            CourseLevel `bson:"level" json:"level"`
	Price            float64     `bson:"price" json:"price"`
	Rating           float64     `bson:"rating" json:"rating"`
	StudentsEnrolled int         `bson:"students_enrolled" json:"students_enrolled"`
	Image            string      `bson:"image" json:"image"`
	Syllabus         []string    `bson:"syllabus" json:"syllabus"`
	Prerequisites    []string    `bson:"prerequisites" json:"prerequisites"`
	Tags             []string    `bson:"tags" json:"tags"`
	CreatedAt        time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `bson:"updated_at" json:"updated_at"`
	IsPublished      bool        `bson:"is_published" json:"is_published"`
}

// ValidLevel reports whether s names a known course level.
func ValidLevel(s string) bool {
	switch CourseLevel(s) {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}

// CourseStats is the aggregate snapshot served by the catalog.
type CourseStats struct {
	TotalCourses    int     `json:"total_courses"`
	TotalStudents   int     `json:"total_students"`
	AverageRating   float64 `json:"average_rating"`
	CategoriesCount int     `json:"categories_count"`
}
