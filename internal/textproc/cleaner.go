// Package textproc implements the text normalization pipeline applied before
// vectorization: lowercasing, URL/punctuation/digit stripping, stopword
// removal and Porter stemming. It mirrors the preprocessing the classifier
// artifacts were trained with, so it must stay byte-for-byte deterministic.
package textproc

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

var (
	urlRe   = regexp.MustCompile(`http\S+`)
	punctRe = regexp.MustCompile(`[^\w\s]`)
	digitRe = regexp.MustCompile(`\d+`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Clean lowercases the text and strips URLs, punctuation and digits.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = punctRe.ReplaceAllString(text, "")
	text = digitRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Tokens splits cleaned text into stemmed tokens with stopwords removed.
func Tokens(cleaned string) []string {
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	words := spaceRe.Split(cleaned, -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" || stopwords[w] {
			continue
		}
		tokens = append(tokens, english.Stem(w, false))
	}
	return tokens
}

// Normalize runs the full pipeline and joins the tokens back into a single
// space-separated string, the form the TF-IDF vectorizer expects.
func Normalize(text string) string {
	return strings.Join(Tokens(Clean(text)), " ")
}
