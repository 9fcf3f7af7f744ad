package model

import "time"

// Course represents a purchasable course.
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// Price is in whole currency units (USD). Checkout converts to cents.
	Price     int       `json:"price"`
	Duration  int       `json:"duration"`
	CreatedBy int       `json:"created_by"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCourseRequest is the multipart form payload for creating a course.
// The cover image arrives as the "file" part.
type CreateCourseRequest struct {
	Title       string `form:"title" binding:"required,min=2,max=200"`
	Description string `form:"description" binding:"required,min=2"`
	Category    string `form:"category" binding:"required,min=2,max=100"`
	Price       int    `form:"price" binding:"required,min=0"`
	Duration    int    `form:"duration" binding:"required,min=1"`
}
