// Package reseller holds the static reseller table and the detection of which
// reseller produced a workbook.
package reseller

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Generic is the passthrough vendor used for unrecognized workbooks.
const Generic = "generic"

// CellPolicy controls how a worksheet's cells are materialized.
type CellPolicy string

const (
	// CellsRaw reads stored values without number formatting.
	CellsRaw CellPolicy = "raw"
	// CellsText reads the displayed text exactly as formatted in the workbook.
	CellsText CellPolicy = "text"
)

// Config is the static configuration of one reseller format.
type Config struct {
	ID                   string     `yaml:"id"`
	Currency             string     `yaml:"currency"`
	Reseller             string     `yaml:"reseller"`
	FilenameTokens       []string   `yaml:"filename_tokens"`
	SheetTokens          []string   `yaml:"sheet_tokens"`
	SheetPatterns        []string   `yaml:"sheet_patterns"`
	Cells                CellPolicy `yaml:"cells"`
	EANDeferred          bool       `yaml:"ean_deferred"`
	LocalValueText       bool       `yaml:"local_value_text"`
	CaseSignificantNames bool       `yaml:"case_significant_names"`
}

// ResellerName returns the fixed reseller literal, or the title-cased id.
func (c Config) ResellerName() string {
	if strings.TrimSpace(c.Reseller) != "" {
		return c.Reseller
	}
	words := strings.Fields(strings.ReplaceAll(c.ID, "_", " "))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Table is the ordered, read-only vendor table.
type Table struct {
	vendors []Config
	byID    map[string]Config
}

//go:embed vendors.yaml
var vendorsYAML []byte

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded vendor definitions.
func Default() *Table {
	defaultOnce.Do(func() {
		table, err := ParseTable(vendorsYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded vendor table: %v", err))
		}
		defaultTable = table
	})
	return defaultTable
}

// DefaultYAML returns a copy of the embedded vendor definitions, the starting
// point for a custom vendors file.
func DefaultYAML() []byte {
	return append([]byte(nil), vendorsYAML...)
}

// ParseTable builds a table from YAML content.
func ParseTable(content []byte) (*Table, error) {
	var doc struct {
		Vendors []Config `yaml:"vendors"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse vendor table: %w", err)
	}

	table := &Table{byID: make(map[string]Config, len(doc.Vendors))}
	for i, cfg := range doc.Vendors {
		cfg.ID = strings.ToLower(strings.TrimSpace(cfg.ID))
		if cfg.ID == "" {
			return nil, fmt.Errorf("vendors[%d].id is required", i)
		}
		if _, exists := table.byID[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate vendor id %q", cfg.ID)
		}
		if strings.TrimSpace(cfg.Currency) == "" {
			return nil, fmt.Errorf("vendors[%d].currency is required", i)
		}
		if cfg.Cells == "" {
			cfg.Cells = CellsRaw
		}
		table.vendors = append(table.vendors, cfg)
		table.byID[cfg.ID] = cfg
	}
	if _, ok := table.byID[Generic]; !ok {
		cfg := Config{ID: Generic, Currency: "EUR", Cells: CellsRaw}
		table.vendors = append(table.vendors, cfg)
		table.byID[Generic] = cfg
	}
	return table, nil
}

// Get returns the configuration of the vendor; unknown ids get the generic
// configuration with the id preserved.
func (t *Table) Get(id string) Config {
	key := strings.ToLower(strings.TrimSpace(id))
	if cfg, ok := t.byID[key]; ok {
		return cfg
	}
	cfg := t.byID[Generic]
	if key != "" {
		cfg.ID = key
	}
	return cfg
}

// Known reports whether the id is in the table.
func (t *Table) Known(id string) bool {
	_, ok := t.byID[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

// IDs returns all vendor ids in priority order.
func (t *Table) IDs() []string {
	out := make([]string, 0, len(t.vendors))
	for _, cfg := range t.vendors {
		out = append(out, cfg.ID)
	}
	return out
}
