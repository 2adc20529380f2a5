package service

import (
	"strings"
	"unicode"
)

// englishStopwords is the NLTK English stopword corpus.
var englishStopwords = toSet(strings.Fields(`
i me my myself we our ours ourselves you you're you've you'll you'd your
yours yourself yourselves he him his himself she she's her hers herself it
it's its itself they them their theirs themselves what which who whom this
that that'll these those am is are was were be been being have has had
having do does did doing a an the and but if or because as until while of
at by for with about against between into through during before after
above below to from up down in out on off over under again further then
once here there when where why how all any both each few more most other
some such no nor not only own same so than too very s t can will just don
don't should should've now d ll m o re ve y ain aren aren't couldn couldn't
didn didn't doesn doesn't hadn hadn't hasn hasn't haven haven't isn isn't
ma mightn mightn't mustn mustn't needn needn't shan shan't shouldn
shouldn't wasn wasn't weren weren't won won't wouldn wouldn't
`))

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether word is an English stopword. word must be
// lowercase.
func IsStopword(word string) bool {
	_, ok := englishStopwords[word]
	return ok
}

// CleanText lowercases text and keeps only the alphanumeric tokens that are
// not stopwords, joined by single spaces.
func CleanText(text string) string {
	tokens := tokenize(strings.ToLower(text))

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !isAlnum(tok) || IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// tokenize splits on whitespace, trims leading and trailing punctuation off
// each field and cuts contractions at the apostrophe ("it's" -> "it").
// Tokens that still carry inner punctuation are returned as they are so the
// caller can discard them.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if f == "" {
			continue
		}
		if i := strings.IndexAny(f, "'’"); i > 0 {
			f = f[:i]
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// StripNonLatin1 drops every code point above U+00FF.
func StripNonLatin1(text string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxLatin1 {
			return -1
		}
		return r
	}, text)
}
