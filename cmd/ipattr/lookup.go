package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ramzeth/ipattr"
)

const defaultTemplate = `{range} "{description}" AS:{number} country:{country} status:{status}`

var jsonOutput bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <ip>...",
	Short: "Print every range containing each address, least specific first",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit results as JSON")
}

type lookupResult struct {
	IP      string          `json:"ip"`
	Count   int             `json:"count"`
	Elapsed string          `json:"elapsed"`
	Matches []ipattr.Record `json:"matches"`
}

func runLookup(_ *cobra.Command, args []string) error {
	file, err := loadRanges(rangesFile)
	if err != nil {
		return err
	}
	trie := buildTrie(file.Records)

	template := file.Settings.LogTemplate
	if template == "" {
		template = defaultTemplate
	}

	failures := 0
	for _, addr := range args {
		start := time.Now()
		matches, err := trie.SearchAll(addr)
		elapsed := time.Since(start)
		if err != nil {
			log.WithError(err).Errorf("lookup %s", addr)
			failures++
			continue
		}

		if jsonOutput {
			out, err := json.MarshalIndent(lookupResult{
				IP:      addr,
				Count:   len(matches),
				Elapsed: elapsed.String(),
				Matches: matches,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			continue
		}

		fmt.Printf("%s: %d match(es) in %s\n", addr, len(matches), elapsed)
		for _, rec := range matches {
			fmt.Printf("  %s\n", renderRecord(template, addr, rec))
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d lookup(s) failed", failures)
	}
	return nil
}

// renderRecord expands the {field} placeholders of the log template.
func renderRecord(template, addr string, rec ipattr.Record) string {
	return strings.NewReplacer(
		"{ip}", addr,
		"{range}", rec.IPRange,
		"{description}", rec.Description,
		"{number}", rec.Number,
		"{country}", rec.Country,
		"{status}", rec.Status,
	).Replace(template)
}
