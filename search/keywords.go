package search

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// \w is ASCII-only in Go regexp; letters like "café" must survive intact.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// KeywordExtractor reduces free text to stemmed keywords for lexical
// matching between a query and stored descriptions.
type KeywordExtractor struct {
	stopWords map[string]bool
}

func NewKeywordExtractor() *KeywordExtractor {
	stopWords := map[string]bool{
		"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
		"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
		"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
		"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
		"with": true, "would": true, "could": true, "should": true, "may": true,
		"might": true, "can": true, "must": true, "do": true,
		"does": true, "did": true, "have": true, "had": true, "this": true,
		"these": true, "they": true, "them": true, "their": true, "his": true,
		"her": true, "she": true, "we": true, "you": true, "your": true,
		"our": true, "us": true, "me": true, "my": true, "i": true,
	}
	return &KeywordExtractor{stopWords: stopWords}
}

// Extract returns deduplicated stemmed keywords from text.
func (e *KeywordExtractor) Extract(text string) []string {
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")

	var keywords []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		if len(word) < 2 || e.stopWords[word] {
			continue
		}
		stemmed, err := snowball.Stem(word, "english", true)
		if err != nil {
			stemmed = word
		}
		if !seen[stemmed] {
			keywords = append(keywords, stemmed)
			seen[stemmed] = true
		}
	}
	return keywords
}

// MatchesAll reports whether every keyword of query appears in description.
// Used for the exact-match-first tie-break: searching "bee" must surface a
// description containing "bee" ahead of higher numeric scores.
func (e *KeywordExtractor) MatchesAll(query string, description string) bool {
	queryKeywords := e.Extract(query)
	if len(queryKeywords) == 0 {
		return false
	}
	descKeywords := e.Extract(description)
	descSet := make(map[string]bool, len(descKeywords))
	for _, k := range descKeywords {
		descSet[k] = true
	}
	for _, k := range queryKeywords {
		if !descSet[k] {
			return false
		}
	}
	return true
}
