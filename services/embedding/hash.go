// Package embedding turns text into fixed-length vectors for the document index.
package embedding

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// Dimension is the vector length every embedder in this service produces.
// It must match the vector size of the document index collection.
const Dimension = 384

// Embedder maps text to a vector of Dimension floats. Implementations are
// pure: the same text always yields the same vector.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) []float64
}

// HashEmbedder is a deterministic bag-of-words hash embedding. It is the
// scheme the existing legal_docs collection was indexed with, so query
// vectors must be computed exactly the same way.
type HashEmbedder struct{}

func NewHashEmbedder() HashEmbedder { return HashEmbedder{} }

func (HashEmbedder) Name() string   { return "hash-384" }
func (HashEmbedder) Dimension() int { return Dimension }

// Embed lower-cases text, splits it on whitespace and adds each word's hash,
// scaled by 1e-6, into slot (word position mod Dimension). Empty input gives
// the zero vector.
func (HashEmbedder) Embed(text string) []float64 {
	vec := make([]float64, Dimension)
	for i, word := range splitWords(strings.ToLower(text)) {
		vec[i%Dimension] += float64(wordHash(word)) / 1_000_000
	}
	return vec
}

// wordHash is the 31-multiplier rolling hash over UTF-16 code units with
// 32-bit signed wraparound.
func wordHash(word string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(word)) {
		h = (h << 5) - h + int32(unit)
	}
	return h
}

// splitWords splits on runs of whitespace. Leading or trailing whitespace
// yields an empty word at that end, which still occupies a position.
func splitWords(s string) []string {
	words := []string{}
	start := 0
	inSpace := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				words = append(words, s[start:i])
				inSpace = true
			}
			continue
		}
		if inSpace {
			start = i
			inSpace = false
		}
	}
	if inSpace {
		words = append(words, "")
	} else {
		words = append(words, s[start:])
	}
	return words
}
