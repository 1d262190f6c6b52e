/*
Package config loads the annotated ranges file consumed by the ipattr
command.

The file carries an optional [settings] section of key = value lines,
followed by one range per line:

	1.11.0.0/16, "ISP-A", 9318, "KR", assigned

The AS number, country and status fields are optional; an omitted
status defaults to "none". Lines starting with # are comments, except a
line of 10 or more # characters, which separates private ranges from
the public ones listed after it. Public ranges are privacy-stripped:
their AS number and country are blanked.
*/
package config

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Ramzeth/ipattr"
)

// DefaultStatus is assigned when a range line omits its status field.
const DefaultStatus = "none"

// Settings holds the optional [settings] section.
type Settings struct {
	// LogLevel is a logrus level name, used when no --log-level flag
	// is given.
	LogLevel string
	// LogTemplate renders one matched range in lookup output.
	// Placeholders: {ip} {range} {description} {number} {country}
	// {status}.
	LogTemplate string
}

// File is a fully parsed ranges file. Records are kept in file order,
// private ranges before public ones.
type File struct {
	Settings Settings
	Records  []ipattr.Record
	// Skipped counts malformed range lines dropped during parsing.
	Skipped int
}

var (
	rangeLine   = regexp.MustCompile(`^([0-9.]+/[0-9]+)\s*,\s*"([^"]*)"(?:\s*,\s*([^,"\s]*))?(?:\s*,\s*"([^"]*)")?(?:\s*,\s*([^,\s]+)\s*)?$`)
	separator   = regexp.MustCompile(`^#{10,}$`)
	settingLine = regexp.MustCompile(`^([A-Za-z_]+)\s*=\s*(.*)$`)
)

// Load reads and parses the ranges file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a ranges file from r. Malformed range lines are logged
// and skipped; only an I/O failure makes Parse itself fail.
func Parse(r io.Reader) (*File, error) {
	file := &File{Records: []ipattr.Record{}}
	inSettings := false
	public := false

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case separator.MatchString(line):
			public = true
			inSettings = false
			continue
		case strings.HasPrefix(line, "#"):
			continue
		case line == "[settings]":
			inSettings = true
			continue
		case line == "[ranges]":
			inSettings = false
			continue
		}

		if inSettings {
			m := settingLine.FindStringSubmatch(line)
			if m == nil {
				log.WithField("line", lineno).Warnf("unrecognized setting line: %s", line)
				continue
			}
			file.applySetting(m[1], strings.TrimSpace(m[2]), lineno)
			continue
		}

		m := rangeLine.FindStringSubmatch(line)
		if m == nil {
			file.Skipped++
			log.WithField("line", lineno).Warnf("skipping malformed range line: %s", line)
			continue
		}
		rec := ipattr.Record{
			IPRange:     m[1],
			Description: m[2],
			Number:      m[3],
			Country:     m[4],
			Status:      m[5],
		}
		if rec.Status == "" {
			rec.Status = DefaultStatus
		}
		if public {
			rec.Number = ""
			rec.Country = ""
		}
		file.Records = append(file.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return file, nil
}

func (f *File) applySetting(key, value string, lineno int) {
	switch key {
	case "log_level":
		f.Settings.LogLevel = value
	case "log_template":
		f.Settings.LogTemplate = value
	default:
		log.WithField("line", lineno).Warnf("unknown setting %q", key)
	}
}
