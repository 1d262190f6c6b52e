// Package main provides the ipattr CLI: lookups of annotated CIDR
// ranges containing an IPv4 address, from a ranges file or over HTTP.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "unknown"
	buildDate    = "unknown"

	rangesFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "ipattr",
	Short:         "Look up which annotated CIDR ranges contain an IPv4 address",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger("")
	},
}

// initLogger applies the --log-level flag, falling back to the ranges
// file setting and then to info.
func initLogger(fallback string) {
	level := logLevel
	if level == "" {
		level = fallback
	}
	ll, err := log.ParseLevel(level)
	if err != nil {
		ll = log.InfoLevel
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, PadLevelText: true})
}

func main() {
	rootCmd.PersistentFlags().StringVar(&rangesFile, "ranges", "ranges.conf", "annotated CIDR ranges file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warning, error")
	rootCmd.AddCommand(lookupCmd, serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
