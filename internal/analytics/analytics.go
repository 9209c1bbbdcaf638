// Package analytics records template lifecycle events in a local sqlite
// database and answers aggregate questions about them.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Event kinds recorded by the server and CLI.
const (
	EventTemplateCreated = "template_created"
	EventTemplateUpdated = "template_updated"
	EventTemplateDeleted = "template_deleted"
	EventEntryExported   = "entry_exported"
	EventAssetUploaded   = "asset_uploaded"
)

// Event is one recorded occurrence. Detail carries the exporter name,
// asset key or similar short context for the kind.
type Event struct {
	ID         uint   `gorm:"primaryKey"`
	Kind       string `gorm:"index;size:64"`
	TemplateID string `gorm:"index;size:64"`
	Detail     string `gorm:"size:255"`
	CreatedAt  time.Time
}

// Summary aggregates events for one template.
type Summary struct {
	TemplateID string `json:"templateId"`
	Exports    int64  `json:"exports"`
	Updates    int64  `json:"updates"`
	Assets     int64  `json:"assets"`
}

type Recorder struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn, creating the schema on
// first use. ":memory:" gives an ephemeral database for tests.
func Open(dsn string) (*Recorder, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("analytics: open %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(&Event{}); err != nil {
		return nil, fmt.Errorf("analytics: migrate: %w", err)
	}
	return &Recorder{db: db}, nil
}

func (r *Recorder) Record(ctx context.Context, kind, templateID, detail string) error {
	event := Event{
		Kind:       kind,
		TemplateID: templateID,
		Detail:     detail,
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("analytics: record %s: %w", kind, err)
	}
	return nil
}

// Summarize reports per-template counts, most exported first.
func (r *Recorder) Summarize(ctx context.Context) ([]Summary, error) {
	var rows []Summary
	err := r.db.WithContext(ctx).
		Model(&Event{}).
		Select(`template_id,
			count(case when kind = ? then 1 end) as exports,
			count(case when kind = ? then 1 end) as updates,
			count(case when kind = ? then 1 end) as assets`,
			EventEntryExported, EventTemplateUpdated, EventAssetUploaded).
		Where("template_id <> ''").
		Group("template_id").
		Order("exports desc, template_id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("analytics: summarize: %w", err)
	}
	return rows, nil
}

// Recent returns the latest events, newest first, capped at limit.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []Event
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("analytics: recent: %w", err)
	}
	return events, nil
}
