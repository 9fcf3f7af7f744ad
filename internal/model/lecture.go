package model

import "time"

// Lecture represents a single video lecture inside a course.
type Lecture struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Video       string    `json:"video"`
	CourseID    int       `json:"course_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AddLectureRequest is the multipart form payload for adding a lecture.
// The video arrives as the "file" part.
type AddLectureRequest struct {
	Title       string `form:"title" binding:"required,min=2,max=200"`
	Description string `form:"description" binding:"required,min=2"`
}
