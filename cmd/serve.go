package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cipherlab/internal/clock"
	"github.com/ziadkadry99/cipherlab/internal/flags"
	"github.com/ziadkadry99/cipherlab/internal/playground"
	"github.com/ziadkadry99/cipherlab/internal/server"
	"github.com/ziadkadry99/cipherlab/internal/stars"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web playground",
	Long:  `Starts the cipherlab web playground: cipher pages with live animation, lessons, and the guided tour, backed by a local sqlite database for tour progress.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	database, flagStore, err := openFlags(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	lib, err := loadLessons(cfg)
	if err != nil {
		return err
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var starClient *stars.Client
	if cfg.StarsEnabled {
		starClient = stars.New(cfg.Repository)
		starClient.Prefetch(ctx)
	}

	pg := playground.New(playground.Options{
		Clock:         clock.Real{},
		Speed:         cfg.Speed,
		DefaultCipher: cfg.DefaultCipher,
		Lessons:       lib,
		Stars:         starClient,
		Flags:         flagStore,
		Tour: playground.TourConfig{
			AutoStart:  cfg.Tour.AutoStart,
			StorageKey: cfg.Tour.StorageKey,
			ClosePoll:  cfg.Tour.ClosePoll(),
		},
	})
	defer pg.Close()

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.AllowAllOrigins,
	}, database)
	registerRoutes(srv, pg, flagStore)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		pg.Close()
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "cipherlab %s listening on http://localhost:%d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
	fmt.Fprintf(os.Stderr, "  Lessons: %d\n", len(lib.List()))
	if verbose {
		fmt.Fprintf(os.Stderr, "  Default cipher: %s, speed x%.2g\n", cfg.DefaultCipher, cfg.Speed)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// registerRoutes wires every feature onto the server. Streams go on the
// root router; everything else gets the request timeout.
func registerRoutes(srv *server.Server, pg *playground.Playground, flagStore *flags.Store) {
	api := srv.API()
	pg.RegisterRoutes(api)
	flags.RegisterRoutes(api, flagStore)
	pg.RegisterStreams(srv.Router())
}
