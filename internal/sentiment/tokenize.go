package sentiment

import (
	"strings"
	"unicode"
)

// Tokenize splits text into word tokens. Tokens are runs of letters, digits,
// and inner apostrophes; everything else separates. Punctuation-only spans
// produce no tokens. The same tokenizer feeds both sentiment scoring and
// word-graph construction so their views of a record agree.
func Tokenize(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})

	kept := tokens[:0]
	for _, tok := range tokens {
		tok = strings.Trim(tok, "'")
		if tok != "" {
			kept = append(kept, tok)
		}
	}
	return kept
}

// defaultStopwords are dropped before lexicon lookup. Deliberately small:
// the lexicon itself filters anything it has no entry for.
var defaultStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "if",
	"in", "into", "is", "it", "no", "not", "of", "on", "or", "such", "that",
	"the", "their", "then", "there", "these", "they", "this", "to", "was",
	"will", "with",
}

// DefaultStopwords returns a fresh stopword set.
func DefaultStopwords() map[string]struct{} {
	set := make(map[string]struct{}, len(defaultStopwords))
	for _, w := range defaultStopwords {
		set[w] = struct{}{}
	}
	return set
}
