package utils

import (
	"math"
	"strings"
	"testing"
)

func TestValidateUserAddress(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"valid lowercase", "0x1234567890abcdef1234567890abcdef12345678", true},
		{"valid checksum case", "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B", true},
		{"too short", "0x1234", false},
		{"too long", "0x1234567890abcdef1234567890abcdef123456789", false},
		{"missing prefix", "001234567890abcdef1234567890abcdef12345678", false},
		{"uppercase prefix", "0X1234567890abcdef1234567890abcdef12345678", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateUserAddress(tt.addr); got != tt.want {
				t.Errorf("ValidateUserAddress(%q) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestValidateTransactionHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"valid", "0x" + strings.Repeat("a", 64), true},
		{"non-hex body still accepted", "0x" + strings.Repeat("g", 64), true},
		{"63 digits", "0x" + strings.Repeat("a", 63), false},
		{"65 digits", "0x" + strings.Repeat("a", 65), false},
		{"missing prefix", strings.Repeat("a", 66), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTransactionHash(tt.hash); got != tt.want {
				t.Errorf("ValidateTransactionHash(%q) = %v, want %v", tt.hash, got, tt.want)
			}
		})
	}
}

func TestValidateAssetSymbol(t *testing.T) {
	if !ValidateAssetSymbol("ETH") {
		t.Error("ETH should be a valid asset")
	}
	if !ValidateAssetSymbol("ABCDEFGHIJ") {
		t.Error("ten characters should be accepted")
	}
	if ValidateAssetSymbol("ABCDEFGHIJK") {
		t.Error("eleven characters should be rejected")
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{15, 5, 3},
		{25, 10, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestOffset(t *testing.T) {
	if off, ok := Offset(1, 10); !ok || off != 0 {
		t.Errorf("Offset(1, 10) = %d, %v", off, ok)
	}
	if off, ok := Offset(3, 10); !ok || off != 20 {
		t.Errorf("Offset(3, 10) = %d, %v", off, ok)
	}
	if _, ok := Offset(math.MaxInt, math.MaxInt); ok {
		t.Error("expected overflow to be reported")
	}
}
