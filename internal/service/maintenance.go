package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blake7/watchstopwatch/internal/database/repository"
)

// MaintenanceService houses destructive history actions surfaced through the CLI.
type MaintenanceService struct {
	DB       *sql.DB
	Sessions *repository.SessionRepo
}

// Clear wipes every archived session. The schema stays intact.
func (s *MaintenanceService) Clear(ctx context.Context) (int64, error) {
	if s.DB == nil || s.Sessions == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	n, err := s.Sessions.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear sessions: %w", err)
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return n, nil
}
