package token

import (
	"strings"
	"testing"
)

func TestNewGeneratorFormat(t *testing.T) {
	gen, err := NewGenerator(DefaultLength, DefaultAlphabet)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	tok, err := gen()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(tok) != DefaultLength {
		t.Fatalf("expected %d characters, got %d", DefaultLength, len(tok))
	}
	for _, r := range tok {
		if !strings.ContainsRune(DefaultAlphabet, r) {
			t.Fatalf("unexpected character %q in token", r)
		}
	}
}

func TestNewGeneratorCustomAlphabet(t *testing.T) {
	gen, err := NewGenerator(12, "ab")
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	tok, err := gen()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Trim(tok, "ab") != "" {
		t.Fatalf("token %q has symbols outside the alphabet", tok)
	}
}

func TestNewGeneratorUnique(t *testing.T) {
	gen, err := NewGenerator(DefaultLength, DefaultAlphabet)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := gen()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestNewGeneratorRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		alphabet string
	}{
		{"zero length", 0, DefaultAlphabet},
		{"single symbol", 8, "a"},
		{"duplicate symbol", 8, "abca"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGenerator(tt.length, tt.alphabet); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestStatic(t *testing.T) {
	gen := Static("one", "two")
	for _, want := range []string{"one", "two"} {
		got, err := gen()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
	if _, err := gen(); err == nil {
		t.Fatal("expected exhausted error")
	}
}
