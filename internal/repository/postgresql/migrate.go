package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
