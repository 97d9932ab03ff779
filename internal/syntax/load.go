// internal/syntax/load.go
package syntax

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/lex/internal/config"
	"github.com/bethropolis/lex/internal/logger"
)

//go:embed rules/*.json
var bundled embed.FS

// ConfigRuleName names the rule synthesized for the editor's own rc files.
const ConfigRuleName = config.AppName

// LoadOptions lists the inputs for building the rule database.
type LoadOptions struct {
	Commands  []string // configuration command names (keyword category 1)
	Variables []string // configuration variable names (keyword category 2)
	Elements  []string // color element names (keyword category 3)
	UserDir   string   // directory of user *.json rules; empty skips it
}

// Load builds the database from, in order: the config-file rule, the bundled
// rules and the user rules. Each source is prepended, so user rules win
// selection over bundled ones. Malformed rules are skipped with a warning.
func Load(opts LoadOptions) *Database {
	db := NewDatabase()
	db.Prepend(ConfigRule(opts))
	loadBundled(db)
	if opts.UserDir != "" {
		if err := LoadDir(db, opts.UserDir); err != nil {
			logger.Warnf("syntax: user rules: %v", err)
		}
	}
	logger.Infof("syntax: %d rules loaded", db.Len())
	return db
}

// ConfigRule returns the rule for .lexrc and .lexconfig files.
func ConfigRule(opts LoadOptions) *Rule {
	rule := &Rule{
		Name:        ConfigRuleName,
		Patterns:    []string{config.RCFileName, config.ConfigFileExt},
		LineComment: "#",
		Flags:       HighlightStrings,
	}
	rule.Keywords[0] = append([]string(nil), opts.Commands...)
	rule.Keywords[1] = append([]string(nil), opts.Variables...)
	rule.Keywords[2] = append([]string(nil), opts.Elements...)
	return rule
}

func loadBundled(db *Database) {
	entries, err := fs.ReadDir(bundled, "rules")
	if err != nil {
		logger.Errorf("syntax: reading bundled rules: %v", err)
		return
	}
	for _, e := range entries {
		data, err := bundled.ReadFile("rules/" + e.Name())
		if err != nil {
			logger.Warnf("syntax: bundled rule %s: %v", e.Name(), err)
			continue
		}
		rule, err := ParseRule(data)
		if err != nil {
			logger.Warnf("syntax: bundled rule %s: %v", e.Name(), err)
			continue
		}
		db.Prepend(rule)
	}
}

// LoadDir prepends every regular *.json file in dir that parses as a rule.
// A missing directory is not an error.
func LoadDir(db *Database, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("syntax: no user rule directory at %s", dir)
			return nil
		}
		return fmt.Errorf("reading rule directory '%s': %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := LoadFile(db, path); err != nil {
			logger.Warnf("syntax: %v", err)
		}
	}
	return nil
}

// LoadFile parses one rule file and prepends it.
func LoadFile(db *Database, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading rule '%s': %w", path, err)
	}
	rule, err := ParseRule(data)
	if err != nil {
		return fmt.Errorf("parsing rule '%s': %w", path, err)
	}
	logger.DebugTagf("syntax", "loaded rule %q from %s (%s)", rule.Name, path, strings.Join(rule.Patterns, " "))
	db.Prepend(rule)
	return nil
}
