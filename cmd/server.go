package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/avatar-launch/internal/config"
	"github.com/ziadkadry99/avatar-launch/internal/history"
	"github.com/ziadkadry99/avatar-launch/internal/media"
	"github.com/ziadkadry99/avatar-launch/internal/server"
	"github.com/ziadkadry99/avatar-launch/internal/showcase"
	"github.com/ziadkadry99/avatar-launch/internal/studio"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the launch site HTTP server",
	Long:  `Starts the HTTP server with the showcase carousel API and WebSocket, the background marquee, the prompt studio and the generation log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		session, err := buildSession(cfg)
		if err != nil {
			return err
		}

		database, store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		// The site stays up without an API key; only /api/images fails.
		var st *studio.Studio
		gen, err := createGeneratorFromConfig(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: image generation disabled: %v\n", err)
		} else {
			st = studio.New(gen, store)
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		})
		registerAllRoutes(srv, cfg, session, st, store)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			if session != nil {
				session.Close()
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "avatarlaunch server %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		if session != nil {
			fmt.Fprintf(os.Stderr, "  Carousel items: %d\n", session.Frame().State.Count)
		}
		if st != nil {
			fmt.Fprintf(os.Stderr, "  Image provider: %s (%s)\n", gen.Name(), gen.Model())
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires every feature package into the server.
func registerAllRoutes(srv *server.Server, cfg *config.Config, session *showcase.Session, st *studio.Studio, store *history.Store) {
	r := srv.Router()

	// Showcase carousel
	showcase.RegisterRoutes(r, session)
	showcase.RegisterStream(srv.StreamRouter(), session)
	if cfg.Carousel.MediaDir != "" {
		// Clips can take longer than the API timeout to download.
		media.ServeDir(srv.StreamRouter(), media.VideosPrefix, cfg.Carousel.MediaDir)
	}

	// Background marquee
	bg := media.NewBackgrounds(cfg.Backgrounds.Dir, cfg.Backgrounds.Patterns, media.BackgroundsPrefix)
	bg.RegisterRoutes(r)

	// Prompt studio
	if st == nil {
		st = studio.New(nil, store)
	}
	studio.RegisterRoutes(r, st)

	// Generation log
	history.RegisterRoutes(r, store)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
