package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"catview/adapters/memory"
	"catview/adapters/postgres"
	"catview/adapters/tabular"
	"catview/domain/catalog"
	"catview/domain/core"
	"catview/internal/admin"
	"catview/internal/config"
	"catview/internal/errors"
	"catview/internal/migration"
	"catview/internal/store"
	"catview/ports"
	"catview/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	datasets, sessions, err := setupRepositories(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	tables := store.NewTableStore()

	// Preload a fixed local catalog file when configured
	if appConfig.Data.CatalogFile != "" {
		if err := preloadCatalog(appConfig, datasets, tables); err != nil {
			log.Fatalf("Failed to preload catalog file: %v", err)
		}
	}

	server, err := ui.NewServer(appConfig, datasets, sessions, tables)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	var group errgroup.Group
	group.Go(func() error {
		log.Printf("Starting catview server on port %s", appConfig.Server.Port)
		return server.Start(":" + appConfig.Server.Port)
	})
	if appConfig.Admin.Enabled {
		group.Go(func() error {
			log.Printf("Starting admin server on port %s", appConfig.Admin.Port)
			return http.ListenAndServe(":"+appConfig.Admin.Port, admin.NewRouter())
		})
	}
	log.Fatal(group.Wait())
}

// setupRepositories wires Postgres-backed repositories when DATABASE_URL is
// set, in-memory ones otherwise
func setupRepositories(appConfig *config.Config) (ports.DatasetRepository, ports.SessionRepository, error) {
	if appConfig.Database.URL == "" {
		log.Println("No DATABASE_URL configured, using in-memory repositories")
		return memory.NewDatasetRepository(), memory.NewSessionRepository(), nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, nil, errors.Wrap(err, "database migration failed")
	}

	return postgres.NewDatasetRepository(db), postgres.NewSessionRepository(db), nil
}

// preloadCatalog registers the configured local spreadsheet so the service
// is usable without an upload
func preloadCatalog(appConfig *config.Config, datasets ports.DatasetRepository, tables *store.TableStore) error {
	reader := tabular.NewDataReader(appConfig.Data.CatalogFile)
	sheets, err := reader.SheetNames()
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", appConfig.Data.CatalogFile)
	}

	dataset := &catalog.Dataset{
		ID:               core.DatasetID(core.NewID()),
		OriginalFilename: appConfig.Data.CatalogFile,
		FilePath:         appConfig.Data.CatalogFile,
		Sheets:           sheets,
		CreatedAt:        core.Now(),
	}
	if err := datasets.Create(context.Background(), dataset); err != nil {
		return errors.Wrap(err, "failed to register preloaded catalog")
	}

	log.Printf("Preloaded catalog file %s as dataset %s (%d sheets)",
		appConfig.Data.CatalogFile, dataset.ID, len(sheets))
	return nil
}
