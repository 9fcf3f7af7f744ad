package model

import "time"

// Progress tracks which lectures a user has completed in a course.
// At most one row exists per (user, course) pair.
type Progress struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	CourseID          int       `json:"course_id"`
	CompletedLectures []int     `json:"completed_lectures"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProgressReport summarizes a user's completion of a course.
type ProgressReport struct {
	CompletedLectures int `json:"completed_lectures"`
	AllLectures       int `json:"all_lectures"`
	Percentage        int `json:"percentage"`
}

// Stats holds platform-wide totals for the admin dashboard.
type Stats struct {
	TotalCourses  int `json:"total_courses"`
	TotalLectures int `json:"total_lectures"`
	TotalUsers    int `json:"total_users"`
}
