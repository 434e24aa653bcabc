package sales

import (
	"sort"
	"strings"
)

// Row is one vendor-native record produced by a cleaning strategy. Keys are
// the vendor's own column names; Source is the 0-based row index in the raw
// sheet the record was derived from.
type Row struct {
	Source int
	Values map[string]string
}

// NewRow creates an empty row for the given source index.
func NewRow(source int) Row {
	return Row{Source: source, Values: make(map[string]string)}
}

// Get returns the trimmed value of the first key present in the row.
func (r Row) Get(keys ...string) string {
	for _, key := range keys {
		if value, ok := r.Values[NormalizeHeader(key)]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Has reports whether the row carries the column at all, blank or not.
func (r Row) Has(key string) bool {
	_, ok := r.Values[NormalizeHeader(key)]
	return ok
}

// Set stores value under the normalized key.
func (r Row) Set(key, value string) {
	r.Values[NormalizeHeader(key)] = value
}

// Delete removes the column from the row.
func (r Row) Delete(key string) {
	delete(r.Values, NormalizeHeader(key))
}

// Keys returns the row's column names in sorted order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for key := range r.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := Row{Source: r.Source, Values: make(map[string]string, len(r.Values))}
	for key, value := range r.Values {
		out.Values[key] = value
	}
	return out
}

// NormalizeHeader folds a column name into its lookup key: lower-case with
// spaces, dashes and underscores removed.
func NormalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
