// cmd/server/main.go
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unsalatasoy/wordmatch/internal/config"
	"github.com/unsalatasoy/wordmatch/internal/handlers"
	"github.com/unsalatasoy/wordmatch/internal/middleware"
)

func main() {
	cfg := &config.Config{}
	cmd := &cobra.Command{
		Use:           "wordmatch-server",
		Short:         "Session authority for the two-player word matching game.",
		Args:          cobra.ExactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())
	cobra.CheckErr(cmd.Execute())
}

func serve(cfg *config.Config) error {
	logger := logrus.New()
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	srv := handlers.NewServer(logger, cfg.RevertDelay)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", middleware.LogMiddleware(logger)(
		handlers.WSHandler(logger, srv, cfg.Origins),
	))

	server := &http.Server{
		Handler: mux,
		// Applies to the upgrade request only; accepted websockets are
		// hijacked and manage their own deadlines.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	l, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	logger.Infof("listening on %s", l.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		return fmt.Errorf("failed to serve: %w", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
		return nil
	}
}
