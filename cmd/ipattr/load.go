package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/Ramzeth/ipattr"
	"github.com/Ramzeth/ipattr/config"
)

// loadRanges parses the ranges file and applies its settings.
func loadRanges(path string) (*config.File, error) {
	file, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if file.Settings.LogLevel != "" && logLevel == "" {
		initLogger(file.Settings.LogLevel)
	}
	if file.Skipped > 0 {
		log.WithField("lines", file.Skipped).Warn("malformed range lines skipped")
	}
	return file, nil
}

// buildTrie inserts every record individually, so one malformed range
// skips that record only instead of aborting the whole load.
func buildTrie(records []ipattr.Record) *ipattr.Trie {
	trie := ipattr.New()
	for _, rec := range records {
		if err := trie.Insert(rec.IPRange, rec); err != nil {
			log.WithError(err).WithField("range", rec.IPRange).Warn("skipping range")
			continue
		}
	}
	log.WithField("ranges", trie.Len()).Debug("trie built")
	return trie
}
