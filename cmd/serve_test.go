package cmd

import "testing"

func TestResolveServePort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flag       int
		configured int
		want       int
	}{
		{name: "flag wins", flag: 9090, configured: 8081, want: 9090},
		{name: "configured port", flag: 0, configured: 8081, want: 8081},
		{name: "fallback", flag: 0, configured: 0, want: 8080},
	}

	for _, tt := range tests {
		if got := resolveServePort(tt.flag, tt.configured); got != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}
