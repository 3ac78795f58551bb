package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/internal/flash"
	"github.com/marqlabs/marq/internal/rendering"
)

// Server holds the application state and configuration
type Server struct {
	dataDir           string
	config            marq.Config
	rootManager       *marq.RootManager
	fileRepo          *marq.FileRepository
	flashManager      *flash.Manager
	backgroundRunner  *marq.BackgroundRunner
	renderer          *rendering.MarkdownRenderer
	highlighter       *marq.HighlightController
	registry          *marq.Registry
	reports           *marq.ReportStore
	reportBuilder     *marq.Builder
	baseTempl         *template.Template // Common templates (layouts, partials)
	httpServer        *http.Server
	encryptionManager *marq.EncryptionManager
}

// ServerOption for configuring the server with functional options pattern
type ServerOption func(*Server) error

// NewServer initializes the server with the given data directory and
// session configuration.
func NewServer(ctx context.Context, dataDir string, cfg marq.Config, opts ...ServerOption) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rootManager, err := marq.NewRootManager(dataDir)
	if err != nil {
		return nil, err
	}

	fileRepo := marq.NewFileRepository(rootManager, marq.DefaultFileConfig)

	basePattern, err := cfg.Pattern()
	if err != nil {
		return nil, err
	}

	renderer := rendering.NewMarkdownRenderer(basePattern)
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	reports := marq.NewReportStore()

	s := &Server{
		dataDir:          dataDir,
		config:           cfg,
		rootManager:      rootManager,
		fileRepo:         fileRepo,
		renderer:         renderer,
		highlighter:      marq.NewHighlightController(renderer),
		registry:         cfg.Registry(),
		reports:          reports,
		reportBuilder:    marq.NewBuilder(reports),
		baseTempl:        tmpl,
		flashManager:     flash.NewManager(),
		backgroundRunner: marq.NewBackgroundRunner(ctx),
	}

	if err := s.fileRepo.Initialize(); err != nil {
		return nil, fmt.Errorf("could not initialize file repository: %w", err)
	}

	s.fileRepo.ReloadCaches()
	s.setupBackgroundTasks()

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WithEncryptionManager sets the encryption manager for the server
func WithEncryptionManager(manager *marq.EncryptionManager) ServerOption {
	return func(s *Server) error {
		s.encryptionManager = manager
		s.fileRepo.SetEncryptionManager(manager)
		return nil
	}
}

func (s *Server) setupBackgroundTasks() {
	cacheDuration := 5 * time.Minute

	s.backgroundRunner.AddPeriodicTask(
		"cache-refresh",
		cacheDuration,
		func(ctx context.Context) error {
			s.fileRepo.ReloadDocumentsIfStale(cacheDuration)
			return nil
		},
	)
}

// Start starts the server and all background tasks
func (s *Server) Start(addr string, port int) error {
	serverAddr := fmt.Sprintf("%s:%d", addr, port)

	s.httpServer = &http.Server{
		Addr:         serverAddr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
		Handler:      s.setupRoutes(),
	}

	// Channel to receive OS signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the http server in a separate goroutine
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		fmt.Printf("Data directory: %s\n", s.dataDir)
		serverErrors <- s.httpServer.ListenAndServe()
	}()

	// Wait for either termination signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not start server: %w", err)
		}
	case sig := <-sigChan:
		fmt.Printf("Received signal %v, initiating shutdown\n", sig)
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server and background tasks
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during HTTP server shutdown: %v", err)
		}
	}

	s.backgroundRunner.Shutdown()

	log.Println("Server shutdown complete")
	return nil
}

// navigationMenu returns the core files in configuration order, marking
// the current one active.
func (s *Server) navigationMenu(current string) []marq.FileInfo {
	coreFiles := s.fileRepo.CoreFiles()

	var files []marq.FileInfo
	for _, core := range s.fileRepo.Config().CoreFiles {
		id := strings.TrimSuffix(core, ".md")
		info, ok := coreFiles[id]
		if !ok {
			continue
		}
		info.IsNavActive = current == id
		files = append(files, info)
	}

	return files
}
