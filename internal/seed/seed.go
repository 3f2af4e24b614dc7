// Package seed provides helpers to create the project catalog and demo data
// for the application database. Demo helpers are intended for development
// and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

// catalog is the canonical set of portfolio projects. Seeding upserts by
// slug, so re-running against a live database refreshes titles and
// descriptions without disturbing existing comments.
var catalog = []models.Project{
	{
		Slug:             "weather-station",
		Title:            "Weather Station",
		ShortDescription: "Self-hosted sensor dashboard with historical charts.",
		DescriptionMD:    "A Raspberry Pi weather station feeding a small time-series dashboard.\n\nBuilt around cheap I2C sensors and a scrape-and-store loop.",
		RepoURL:          "https://github.com/example/weather-station",
	},
	{
		Slug:             "chess-engine",
		Title:            "Chess Engine",
		ShortDescription: "Alpha-beta engine with a simple UCI front end.",
		DescriptionMD:    "A classical alpha-beta searcher with iterative deepening and a hand-tuned evaluation.",
		RepoURL:          "https://github.com/example/chess-engine",
	},
	{
		Slug:             "link-shortener",
		Title:            "Link Shortener",
		ShortDescription: "Tiny URL shortener with click analytics.",
		DescriptionMD:    "Short links with per-link click counts and referrer breakdowns.",
		LiveURL:          "https://example.com/s",
	},
}

// Projects upserts the built-in project catalog.
func Projects(ctx context.Context, db *gorm.DB) error {
	repo := repository.NewProjectRepository(db)
	for i := range catalog {
		project := catalog[i]
		if err := repo.Upsert(ctx, &project); err != nil {
			return fmt.Errorf("seed project %q: %w", project.Slug, err)
		}
	}
	return nil
}

// DemoComments attaches perProject fake comments to every project. Comments
// get a realistic created_at spread over the past 60 days.
func DemoComments(ctx context.Context, db *gorm.DB, perProject int) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	projects, err := projectRepo.List(ctx, "")
	if err != nil {
		return fmt.Errorf("seed demo comments: %w", err)
	}

	for _, project := range projects {
		for i := 0; i < perProject; i++ {
			comment := &models.Comment{
				ProjectID: project.ID,
				Name:      gofakeit.Name(),
				Email:     gofakeit.Email(),
				Content:   gofakeit.Sentence(r.Intn(12) + 3),
				CreatedAt: time.Now().UTC().Add(-time.Duration(r.Intn(60*24)) * time.Hour),
			}
			if err := commentRepo.Create(ctx, comment); err != nil {
				return fmt.Errorf("seed comment on %q: %w", project.Slug, err)
			}
		}
	}
	return nil
}
