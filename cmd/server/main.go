package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"marknote/internal/config"
	"marknote/internal/domain/repositories"
	"marknote/internal/filesystem"
	"marknote/internal/handler"
	"marknote/internal/middleware"
	mongorepo "marknote/internal/repository/mongo"
	"marknote/internal/repository/postgres"
	"marknote/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"root_dir", cfg.RootDir,
		"store_driver", cfg.StoreDriver,
	)

	// Note storage backend
	ctx := context.Background()
	var noteRepo repositories.NoteRepository

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		table := postgres.TableName(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, table); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}

		noteRepo = postgres.NewNoteRepository(pool, table, logger)
		logger.Info("database connected", "driver", cfg.StoreDriver, "table", table)

	default:
		client, err := mongorepo.NewClient(ctx, cfg.MongoURL)
		if err != nil {
			log.Fatalf("Failed to connect to the document store: %v", err)
		}
		defer client.Disconnect(ctx)

		noteRepo = mongorepo.NewNoteRepository(client.Database(cfg.MongoDatabase), logger)
		logger.Info("database connected", "driver", cfg.StoreDriver, "database", cfg.MongoDatabase)
	}

	// Filesystem components rooted at the configured project directory
	resolver, err := filesystem.NewResolver(cfg.RootDir)
	if err != nil {
		log.Fatalf("Failed to resolve root directory: %v", err)
	}
	tree := filesystem.NewTreeBuilder(resolver, cfg.IgnoreNames, logger)
	store := filesystem.NewStore(resolver, logger)

	// Services and handlers
	noteService := service.NewNoteService(noteRepo, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	fileHandler := handler.NewFileHandler(tree, store, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Note routes
	mux.HandleFunc("POST /markdowns/{$}", noteHandler.CreateNote)
	mux.HandleFunc("GET /markdowns/{$}", noteHandler.ListNotes)
	mux.HandleFunc("GET /markdowns/{id}", noteHandler.GetNote)
	mux.HandleFunc("PUT /markdowns/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("DELETE /markdowns/{id}", noteHandler.DeleteNote)

	// Filesystem routes
	mux.HandleFunc("GET /folder-items", fileHandler.GetFolderItems)
	mux.HandleFunc("POST /file", fileHandler.CreateFile)
	mux.HandleFunc("POST /folder", fileHandler.CreateFolder)
	mux.HandleFunc("POST /get-file-content/{$}", fileHandler.GetFileContent)
	mux.HandleFunc("POST /save-file", fileHandler.SaveFile)
	mux.HandleFunc("DELETE /delete/{$}", fileHandler.DeleteItem)

	// Build middleware chain: CORS wraps Recovery wraps routes, so pre-flight
	// requests are answered before anything else runs.
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
