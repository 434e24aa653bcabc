package timeutil

import (
	"math"
	"strings"
	"time"
)

var englishMonths = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"sept":      time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// Nominative and genitive Ukrainian month names, January first.
var (
	ukrainianMonths = [12]string{
		"січень", "лютий", "березень", "квітень", "травень", "червень",
		"липень", "серпень", "вересень", "жовтень", "листопад", "грудень",
	}
	ukrainianMonthsGenitive = [12]string{
		"січня", "лютого", "березня", "квітня", "травня", "червня",
		"липня", "серпня", "вересня", "жовтня", "листопада", "грудня",
	}
)

// MonthFromName resolves a full or 3-letter English month name, ignoring case.
func MonthFromName(name string) (time.Month, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if month, ok := englishMonths[key]; ok {
		return month, true
	}
	if len(key) == 3 {
		return MonthFromAbbrev(key)
	}
	return 0, false
}

// MonthFromAbbrev resolves an English 3-letter abbreviation such as "Apr".
func MonthFromAbbrev(abbrev string) (time.Month, bool) {
	key := strings.ToLower(strings.TrimSpace(abbrev))
	if len(key) != 3 {
		return 0, false
	}
	for month := time.January; month <= time.December; month++ {
		if strings.ToLower(month.String()[:3]) == key {
			return month, true
		}
	}
	return 0, false
}

// MonthPrefix resolves a header such as "Jan", "JAN-25" or "January 2025" by
// its first three letters.
func MonthPrefix(header string) (time.Month, bool) {
	runes := []rune(strings.TrimSpace(header))
	if len(runes) < 3 {
		return 0, false
	}
	if len(runes) > 3 && isLetter(runes[3]) {
		if month, ok := MonthFromName(leadingLetters(runes)); ok {
			return month, true
		}
		return 0, false
	}
	return MonthFromAbbrev(string(runes[:3]))
}

// UkrainianMonth returns the nominative Ukrainian name of the month in lower case.
func UkrainianMonth(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return ukrainianMonths[month-1]
}

// UkrainianMonthGenitive returns the genitive form, as used in "1 червня".
func UkrainianMonthGenitive(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return ukrainianMonthsGenitive[month-1]
}

// ExcelSerialToTime converts an Excel 1900-system serial day number.
func ExcelSerialToTime(serial float64) time.Time {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	days := math.Floor(serial)
	seconds := math.Round((serial - days) * 86400)
	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)
}

func leadingLetters(runes []rune) string {
	end := 0
	for end < len(runes) && isLetter(runes[end]) {
		end++
	}
	return string(runes[:end])
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
