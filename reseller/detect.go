package reseller

import (
	"path/filepath"
	"strings"
)

// Detect returns the vendor id for a workbook. Filename tokens are checked
// for every vendor in priority order before any sheet-name token, and an
// unmatched workbook is Generic.
func (t *Table) Detect(filename string, sheetNames []string) string {
	base := filepath.Base(filename)
	for _, cfg := range t.vendors {
		if containsAnyToken(base, cfg.FilenameTokens) {
			return cfg.ID
		}
	}
	for _, cfg := range t.vendors {
		for _, sheet := range sheetNames {
			if containsAnyToken(sheet, cfg.SheetTokens) {
				return cfg.ID
			}
		}
	}
	return Generic
}

// SelectSheet returns the preferred sheet of the vendor. Patterns are tried
// in order against every sheet; the first sheet is the fallback.
func (t *Table) SelectSheet(vendorID string, sheetNames []string) string {
	if len(sheetNames) == 0 {
		return ""
	}
	cfg := t.Get(vendorID)
	for _, pattern := range cfg.SheetPatterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		for _, sheet := range sheetNames {
			if strings.Contains(strings.ToLower(sheet), pattern) {
				return sheet
			}
		}
	}
	return sheetNames[0]
}

func containsAnyToken(value string, tokens []string) bool {
	lower := strings.ToLower(value)
	compact := compactToken(lower)
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if strings.Contains(lower, token) || strings.Contains(compact, compactToken(token)) {
			return true
		}
	}
	return false
}

func compactToken(value string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(value)
}
