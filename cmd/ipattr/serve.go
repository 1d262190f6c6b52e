package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ramzeth/ipattr/server"
)

var (
	listenAddr string
	cacheCap   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "listen address")
	serveCmd.Flags().IntVar(&cacheCap, "cache-cap", 10240, "lookup cache capacity")
}

func runServe(_ *cobra.Command, _ []string) error {
	file, err := loadRanges(rangesFile)
	if err != nil {
		return err
	}
	trie := buildTrie(file.Records)

	srv, err := server.New(server.Config{Listen: listenAddr, CacheCap: cacheCap}, trie)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	return srv.Run()
}
