package cli

import (
	"database/sql"

	"github.com/blake7/watchstopwatch/internal/config"
	"github.com/blake7/watchstopwatch/internal/database"
	"github.com/blake7/watchstopwatch/internal/database/repository"
	"github.com/blake7/watchstopwatch/internal/service"
)

// historyStore bundles the archive database with the services built on it.
type historyStore struct {
	db          *sql.DB
	sessions    *repository.SessionRepo
	archive     *service.ArchiveService
	maintenance *service.MaintenanceService
}

func openHistoryStore(cfg config.HistoryConfig) (*historyStore, error) {
	db, err := database.OpenArchive(cfg.Path)
	if err != nil {
		return nil, err
	}
	sessions := repository.NewSessionRepo(db)
	return &historyStore{
		db:          db,
		sessions:    sessions,
		archive:     &service.ArchiveService{Sessions: sessions},
		maintenance: &service.MaintenanceService{DB: db, Sessions: sessions},
	}, nil
}

func (h *historyStore) Close() error {
	return h.db.Close()
}
