package dto

import "time"

type CreateNewsRequest struct {
	Title    string   `json:"title" binding:"required,max=300"`
	Content  string   `json:"content" binding:"required"`
	Image    string   `json:"image" binding:"required,url"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags" binding:"required,min=1"`
}

type UpdateNewsRequest struct {
	Title    string   `json:"title" binding:"required,max=300"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags" binding:"required,min=1"`
}

type CreateBreakingNewsRequest struct {
	Title   string `json:"title" binding:"required,max=300"`
	Content string `json:"content" binding:"required"`
	Image   string `json:"image" binding:"omitempty,url"`
}

type UpdateBreakingNewsRequest struct {
	Title   string `json:"title" binding:"required,max=300"`
	Content string `json:"content" binding:"required"`
}

// NewsResponse is the public article projection. AuthorEmail is only
// populated on the authoring paths, never on public listings.
type NewsResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	AuthorName  string    `json:"author_name,omitempty"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}
