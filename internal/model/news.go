package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// News is a regular article. Slug is "<lowercased-title-words>-<id>" and is
// finalized after insert once the id is known.
type News struct {
	gorm.Model
	Title       string         `gorm:"column:title;not null"`
	Content     string         `gorm:"column:content;not null"`
	Image       string         `gorm:"column:image;not null"`
	Category    string         `gorm:"column:category;not null;index"`
	Tags        datatypes.JSON `gorm:"column:tags"`
	AuthorName  string         `gorm:"column:author_name"`
	AuthorEmail string         `gorm:"column:author_email"`
	Slug        string         `gorm:"column:slug;index"`
}

// BreakingNews is the stripped-down article type: no category or tags, and
// the image is optional.
type BreakingNews struct {
	gorm.Model
	Title       string `gorm:"column:title;not null"`
	Content     string `gorm:"column:content;not null"`
	Image       string `gorm:"column:image"`
	AuthorName  string `gorm:"column:author_name"`
	AuthorEmail string `gorm:"column:author_email"`
	Slug        string `gorm:"column:slug;index"`
}
