package main

import (
	"keepnotes/cmd/internal/config"
	"keepnotes/cmd/internal/domain/filestore"
	"keepnotes/cmd/internal/domain/sqlite"
	"keepnotes/cmd/internal/domain/sqlite/repository"
	"keepnotes/cmd/internal/service"
	"keepnotes/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// openNoteService builds the service on top of the configured backend. The
// returned func releases the backend.
func openNoteService(cfg *config.Config) (*service.DefaultNoteService, func(), error) {
	svc, closeFn, err := openBackend(cfg, validators.New())
	if err != nil {
		return nil, nil, err
	}

	svc.Strict = cfg.StrictValidation
	if svc.Strict {
		log.Info("strict request validation enabled")
	}
	return svc, closeFn, nil
}

func openBackend(cfg *config.Config, validate *validator.Validate) (*service.DefaultNoteService, func(), error) {
	switch cfg.Backend {
	case config.BackendTable:
		db, err := sqlite.Init(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}

		log.Infof("using table backend at %s", cfg.DatabasePath)
		closeFn := func() {
			if err := sqlite.Close(db); err != nil {
				log.Warnf("failed to close database: %v", err)
			}
		}
		return service.NewNoteService(repository.NewNoteRepository(db), validate), closeFn, nil

	default:
		repo := filestore.NewNoteRepository(filestore.Config{
			Path:          cfg.FilePath,
			LenientReads:  cfg.FileLenientReads,
			LenientWrites: cfg.FileLenientWrites,
		})

		log.Infof("using file backend at %s (lenient reads: %t, lenient writes: %t)",
			cfg.FilePath, cfg.FileLenientReads, cfg.FileLenientWrites)
		return service.NewNoteService(repo, validate), func() {}, nil
	}
}
