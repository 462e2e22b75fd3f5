// Package filter implements the pure narrowing of an in-memory course
// collection by transient criteria. It is independent of how the
// collection was fetched: any server-side narrowing is an optimization
// and Apply reproduces the full predicate semantics on its own.
package filter

import (
	"fmt"
	"strings"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// Default price bounds applied by the UI when the user has not moved
// the slider.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 500
)

// Criteria is the transient filter/search input state. Absent or empty
// fields impose no constraint.
type Criteria struct {
	Search     string
	Category   string
	Level      string
	Instructor string
	MinPrice   *float64
	MaxPrice   *float64
}

// IsZero reports whether the criteria impose no constraint at all.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Category == "" && c.Level == "" &&
		c.Instructor == "" && c.MinPrice == nil && c.MaxPrice == nil
}

// CacheKey builds a stable key for list caching from the criteria.
func (c Criteria) CacheKey() string {
	min := ""
	max := ""
	if c.MinPrice != nil {
		min = fmt.Sprintf("%g", *c.MinPrice)
	}
	if c.MaxPrice != nil {
		max = fmt.Sprintf("%g", *c.MaxPrice)
	}
	return fmt.Sprintf("courses:list:q=%s:c=%s:l=%s:i=%s:min=%s:max=%s",
		strings.ToLower(c.Search), c.Category, c.Level, c.Instructor, min, max)
}

// Matches reports whether a single course satisfies every present
// criterion.
func Matches(course entity.Course, c Criteria) bool {
	if c.Search != "" {
		term := strings.ToLower(c.Search)
		fields := make([]string, 0, 4+len(course.Tags))
		fields = append(fields, course.Title, course.Description, course.Instructor, course.Category)
		fields = append(fields, course.Tags...)
		haystack := strings.ToLower(strings.Join(fields, "\n"))
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	if c.Category != "" && course.Category != c.Category {
		return false
	}
	if c.Level != "" && string(course.Level) != c.Level {
		return false
	}
	// Exact match. Some callers historically wanted substring semantics
	// here; exact match is the documented behavior.
	if c.Instructor != "" && course.Instructor != c.Instructor {
		return false
	}
	if c.MinPrice != nil && course.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && course.Price > *c.MaxPrice {
		return false
	}
	return true
}

// Apply returns the ordered sub-sequence of courses satisfying all
// present criteria. The relative order of the input is preserved, and
// empty criteria act as the identity filter.
func Apply(courses []entity.Course, c Criteria) []entity.Course {
	if c.IsZero() {
		return courses
	}
	out := make([]entity.Course, 0, len(courses))
	for _, course := range courses {
		if Matches(course, c) {
			out = append(out, course)
		}
	}
	return out
}
