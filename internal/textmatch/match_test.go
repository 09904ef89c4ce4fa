package textmatch

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     float64
	}{
		{"identical", "hello world", "hello world", 1},
		{"case and spacing normalized", "Hello   World", "hello world", 1},
		{"both empty", "", "", 1},
		{"completely different length one", "a", "b", 0},
		{"empty vs non-empty", "", "abcd", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.expected, tt.actual); !almostEqual(got, tt.want) {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}

	// One substitution in an 11-rune reference
	got := Similarity("hello world", "hello worle")
	if !almostEqual(got, 1-1.0/11) {
		t.Errorf("single substitution similarity = %v", got)
	}
}

func TestWordErrorRate(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     float64
	}{
		{"identical", "the quick brown fox", "the quick brown fox", 0},
		{"one substitution", "the quick brown fox", "the quick brown cat", 0.25},
		{"one deletion", "the quick brown fox", "the quick brown", 0.25},
		{"one insertion", "the quick brown fox", "the very quick brown fox", 0.25},
		{"empty reference empty hypothesis", "", "", 0},
		{"empty reference", "", "something", 1},
		{"empty hypothesis", "a b c d", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordErrorRate(tt.expected, tt.actual); !almostEqual(got, tt.want) {
				t.Errorf("WordErrorRate(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestCharErrorRate(t *testing.T) {
	if got := CharErrorRate("abcd", "abcd"); !almostEqual(got, 0) {
		t.Errorf("identical CER = %v", got)
	}
	if got := CharErrorRate("abcd", "abce"); !almostEqual(got, 0.25) {
		t.Errorf("one substitution CER = %v", got)
	}
	if got := CharErrorRate("", ""); !almostEqual(got, 0) {
		t.Errorf("empty CER = %v", got)
	}
	if got := CharErrorRate("", "x"); !almostEqual(got, 1) {
		t.Errorf("empty reference CER = %v", got)
	}
}
