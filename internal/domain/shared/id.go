package shared

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDLength is the length of generated primary keys
const IDLength = 21

// IDAlphabet is the URL-safe NanoID alphabet
const IDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewID returns a random 21-character identifier.
// Uniqueness is probabilistic and is not checked against stored rows.
func NewID() string {
	id, err := gonanoid.New(IDLength)
	if err != nil {
		panic("nanoid: random source failed: " + err.Error())
	}
	return id
}

// IsValidID reports whether s has the shape of a generated identifier
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for _, r := range s {
		if !isIDRune(r) {
			return false
		}
	}
	return true
}

func isIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}
