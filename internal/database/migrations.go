package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes on PostgreSQL deployments.
// MySQL gets the equivalent indexes from the gorm model tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Campaign indexes for per-user listing and ordering
		{"campaigns", "idx_campaigns_user_id", "user_id"},
		{"campaigns", "idx_campaigns_created_at", "created_at"},

		// Work report lookups by campaign
		{"work_reports", "idx_work_reports_campaign_id", "campaign_id"},
		{"work_reports", "idx_work_reports_created_at", "created_at"},

		// Supervisor hierarchy traversal
		{"users", "idx_users_supervisor_id", "supervisor_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
