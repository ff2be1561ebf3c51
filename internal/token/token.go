// Package token generates opaque invitation tokens.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// DefaultAlphabet is the alphanumeric alphabet used when none is configured.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength yields roughly 190 bits of entropy with DefaultAlphabet.
const DefaultLength = 32

// Generator produces a new token on every call.
type Generator func() (string, error)

// NewGenerator returns a Generator producing length-character tokens drawn
// uniformly from alphabet using crypto/rand.
func NewGenerator(length int, alphabet string) (Generator, error) {
	if length <= 0 {
		return nil, errors.New("token length must be positive")
	}
	symbols := []rune(alphabet)
	if len(symbols) < 2 {
		return nil, errors.New("token alphabet needs at least two symbols")
	}
	seen := make(map[rune]struct{}, len(symbols))
	for _, r := range symbols {
		if _, dup := seen[r]; dup {
			return nil, fmt.Errorf("token alphabet has duplicate symbol %q", r)
		}
		seen[r] = struct{}{}
	}

	size := big.NewInt(int64(len(symbols)))
	return func() (string, error) {
		out := make([]rune, length)
		for i := range out {
			n, err := rand.Int(rand.Reader, size)
			if err != nil {
				return "", fmt.Errorf("read random: %w", err)
			}
			out[i] = symbols[n.Int64()]
		}
		return string(out), nil
	}, nil
}

// Static returns a Generator that yields tokens in order and fails once
// they are exhausted. Intended for tests.
func Static(tokens ...string) Generator {
	next := 0
	return func() (string, error) {
		if next >= len(tokens) {
			return "", errors.New("static token generator exhausted")
		}
		t := tokens[next]
		next++
		return t, nil
	}
}
