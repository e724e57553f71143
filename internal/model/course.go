package model

import "time"

// Course is one scheduled class entry, owned by the authenticated user
// whose email created it.
type Course struct {
	ID         string    `json:"id"`
	CourseCode string    `json:"courseCode"`
	Title      string    `json:"title"`
	Units      int       `json:"units"`
	Days       string    `json:"days"`
	Time       string    `json:"time"`
	Room       string    `json:"room"`
	Instructor string    `json:"instructor"`
	OwnerEmail string    `json:"ownerEmail"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CourseDraft is the client-submitted payload for creating or updating a
// course. The id, ownerEmail and createdAt fields are always assigned by
// the server; an ownerEmail in the request body is ignored.
type CourseDraft struct {
	CourseCode string `json:"courseCode" binding:"required,min=1,max=20"`
	Title      string `json:"title" binding:"required,min=1,max=120"`
	Units      int    `json:"units" binding:"required,min=1,max=99"`
	Days       string `json:"days" binding:"required,min=1,max=20"`
	Time       string `json:"time" binding:"required"`
	Room       string `json:"room" binding:"required,min=1,max=60"`
	Instructor string `json:"instructor" binding:"required,min=1,max=120"`
}
