// Package models contains data structures for the application's domain models.
package models

import "time"

// Project represents a portfolio project. Projects are written only by
// operator tooling (cmd/seed); the API exposes them read-only.
type Project struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Slug             string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	ShortDescription string    `gorm:"size:500" json:"short_description,omitempty"`
	DescriptionMD    string    `gorm:"type:text" json:"description_md,omitempty"`
	ImageURLDesktop  string    `gorm:"size:255" json:"image_url_desktop,omitempty"`
	ImageURLMobile   string    `gorm:"size:255" json:"image_url_mobile,omitempty"`
	ImagesJSON       string    `gorm:"type:text" json:"images_json,omitempty"`
	RepoURL          string    `gorm:"size:1024" json:"repo_url,omitempty"`
	LiveURL          string    `gorm:"size:1024" json:"live_url,omitempty"`
	Comments         []Comment `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
