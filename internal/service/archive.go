package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blake7/watchstopwatch/internal/database/repository"
	"github.com/blake7/watchstopwatch/internal/stopwatch"
)

// ArchiveService stores finished stopwatch sessions.
type ArchiveService struct {
	Sessions *repository.SessionRepo
	Now      func() time.Time
}

// Archive records snap as a new session. Snapshots with no elapsed time are
// skipped and yield a nil session.
func (s *ArchiveService) Archive(ctx context.Context, snap stopwatch.Snapshot) (*repository.Session, error) {
	if s.Sessions == nil {
		return nil, fmt.Errorf("archive: sessions repo not configured")
	}
	if snap.Elapsed <= 0 {
		return nil, nil
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	sess := repository.Session{
		ID:            uuid.NewString(),
		RecordedAt:    now().UTC(),
		ElapsedMillis: snap.Elapsed,
		LapCount:      len(snap.Laps),
		Laps:          snap.Laps,
	}
	if err := s.Sessions.Insert(ctx, sess); err != nil {
		return nil, fmt.Errorf("archive session: %w", err)
	}
	return &sess, nil
}
