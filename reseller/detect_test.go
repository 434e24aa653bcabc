package reseller

import "testing"

func TestDetect(t *testing.T) {
	t.Parallel()

	table := Default()
	tests := []struct {
		name     string
		filename string
		sheets   []string
		want     string
	}{
		{name: "boxnox monthly report", filename: "BOXNOX - BIBBI Monthly Sales Report APR2025.xlsx", sheets: []string{"Sell Out"}, want: "boxnox"},
		{name: "cdlc report period", filename: "BIBBIPARFU_ReportPeriod02-2025.xlsx", want: "cdlc"},
		{name: "skins sa with spaces", filename: "Skins SA BIBBI CY 2025 February.xlsx", want: "skins_sa"},
		{name: "skins nl with underscore", filename: "skins_nl_bibbi_31-03-2025.xlsx", want: "skins_nl"},
		{name: "liberty case insensitive", filename: "LIBERTY bibbi 02_03_2025.xlsx", want: "liberty"},
		{name: "galilu", filename: "Galilu BIBBI Mar'25.xlsx", want: "galilu"},
		{name: "selfridges", filename: "Selfridges 2025 03.xlsx", want: "selfridges"},
		{name: "aromateque", filename: "Aromateque sales March 2025.xlsx", want: "aromateque"},
		{name: "ukraine from sheet name", filename: "report.xlsx", sheets: []string{"TDSheet"}, want: "ukraine"},
		{name: "filename beats sheet", filename: "Boxnox.xlsx", sheets: []string{"TDSheet"}, want: "boxnox"},
		{name: "unknown is generic", filename: "something else.xlsx", sheets: []string{"Sheet1"}, want: Generic},
		{name: "empty input is generic", filename: "", want: Generic},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := table.Detect(tc.filename, tc.sheets); got != tc.want {
				t.Fatalf("Detect(%q, %v) = %q, want %q", tc.filename, tc.sheets, got, tc.want)
			}
		})
	}
}

func TestSelectSheet(t *testing.T) {
	t.Parallel()

	table := Default()
	tests := []struct {
		name   string
		vendor string
		sheets []string
		want   string
	}{
		{name: "primary pattern", vendor: "boxnox", sheets: []string{"Summary", "Sell Out 2025"}, want: "Sell Out 2025"},
		{name: "alternate pattern", vendor: "boxnox", sheets: []string{"Summary", "SELLOUT"}, want: "SELLOUT"},
		{name: "pattern order wins over sheet order", vendor: "selfridges", sheets: []string{"Sales", "Sales by Product"}, want: "Sales by Product"},
		{name: "fallback to first sheet", vendor: "cdlc", sheets: []string{"Foo", "Bar"}, want: "Foo"},
		{name: "unknown vendor first sheet", vendor: "nope", sheets: []string{"A", "B"}, want: "A"},
		{name: "no sheets", vendor: "boxnox", want: ""},
	}

	for _, tc := range tests {
		if got := table.SelectSheet(tc.vendor, tc.sheets); got != tc.want {
			t.Fatalf("%s: SelectSheet = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestConfigResellerName(t *testing.T) {
	t.Parallel()

	table := Default()
	if got := table.Get("skins_sa").ResellerName(); got != "Skins SA" {
		t.Fatalf("expected fixed literal, got %q", got)
	}
	if got := table.Get("boxnox").ResellerName(); got != "Boxnox" {
		t.Fatalf("expected title-cased id, got %q", got)
	}
	if got := table.Get("skins_nl").ResellerName(); got != "Skins Nl" {
		t.Fatalf("expected title-cased words, got %q", got)
	}
}

func TestGetUnknownFallsBackToGeneric(t *testing.T) {
	t.Parallel()

	cfg := Default().Get("mystery")
	if cfg.ID != "mystery" || cfg.Currency != "EUR" {
		t.Fatalf("unexpected config for unknown vendor: %+v", cfg)
	}
	if Default().Known("mystery") {
		t.Fatalf("mystery must not be known")
	}
}

func TestParseTableRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := ParseTable([]byte(`vendors:
  - id: a
    currency: EUR
  - id: A
    currency: EUR
`))
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}
