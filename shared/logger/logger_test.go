package logger

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"json info", "info", "json", false},
		{"console debug", "debug", "console", false},
		{"empty format defaults to json", "warn", "", false},
		{"unknown level", "loud", "json", true},
		{"unknown format", "info", "xml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
			}
			if err == nil && log == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestMustFallsBack(t *testing.T) {
	if Must("loud", "xml") == nil {
		t.Fatal("Must should never return nil")
	}
}
