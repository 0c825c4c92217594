package urlcheck

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// MaxURLs is the most URLs reported for one text.
const MaxURLs = 10

const (
	leadingPunct  = `<([{"'`
	trailingPunct = `)]}>.,;:!?"'`
)

var singleURLPattern = regexp.MustCompile(
	`(?i)^(?:https?://|www\.)?(?:[a-z0-9-]+\.)+[a-z]{2,}(?::\d{2,5})?(?:/[^\s\v\p{Z}\x{FEFF}]*)?$`)

// ExtractedURL is a cleaned URL candidate and the byte offset where it
// starts in the scanned text.
type ExtractedURL struct {
	URL   string `json:"url"`
	Start int    `json:"start"`
}

// Extractor turns matcher spans into a cleaned, deduplicated URL list.
type Extractor struct {
	matcher Matcher
	max     int
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMatcher replaces the default RegexpMatcher.
func WithMatcher(m Matcher) ExtractorOption {
	return func(e *Extractor) {
		e.matcher = m
	}
}

// WithMaxURLs changes the cap on reported URLs.
func WithMaxURLs(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.max = n
		}
	}
}

// NewExtractor returns an Extractor with the default matcher and cap.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{matcher: RegexpMatcher{}, max: MaxURLs}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the URLs in text ordered by position.
// Duplicates are detected case-insensitively and the first one wins.
func (e *Extractor) Extract(text string) []ExtractedURL {
	spans := e.matcher.Match(text)
	if len(spans) == 0 {
		return nil
	}

	candidates := make([]ExtractedURL, 0, len(spans))
	for _, span := range spans {
		if span.Start > 0 && text[span.Start-1] == '@' {
			continue
		}

		lo, hi := stripBounds(text[span.Start:span.End])
		if lo >= hi {
			continue
		}
		url := text[span.Start+lo : span.Start+hi]
		if hasPrefixFold(url, "mailto:") {
			continue
		}
		candidates = append(candidates, ExtractedURL{URL: url, Start: span.Start + lo})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Start < candidates[j].Start
	})

	seen := make(map[string]struct{}, len(candidates))
	urls := make([]ExtractedURL, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		urls = append(urls, c)
		if len(urls) == e.max {
			break
		}
	}

	return urls
}

// URLs returns only the URL strings of Extract.
func (e *Extractor) URLs(text string) []string {
	extracted := e.Extract(text)
	urls := make([]string, len(extracted))
	for i, u := range extracted {
		urls[i] = u.URL
	}
	return urls
}

var defaultExtractor = NewExtractor()

// Extract runs the default Extractor.
func Extract(text string) []ExtractedURL {
	return defaultExtractor.Extract(text)
}

// LooksLikeSingleURL reports whether s, once punctuation is stripped, is a
// single URL with nothing else around it.
func LooksLikeSingleURL(s string) bool {
	v := StripPunctuation(s)
	if v == "" {
		return false
	}
	if strings.IndexFunc(v, IsSpace) >= 0 || strings.Contains(v, "@") {
		return false
	}
	return singleURLPattern.MatchString(v)
}

// StripPunctuation trims surrounding whitespace, leading opening brackets
// and quotes, and trailing closing brackets, quotes and sentence punctuation.
func StripPunctuation(s string) string {
	lo, hi := stripBounds(s)
	return s[lo:hi]
}

// stripBounds returns the byte range of s that StripPunctuation keeps.
func stripBounds(s string) (int, int) {
	lo, hi := trimSpaceBounds(s, 0, len(s))

	rest := strings.TrimLeft(s[lo:hi], leadingPunct)
	lo = hi - len(rest)
	rest = strings.TrimRight(s[lo:hi], trailingPunct)
	hi = lo + len(rest)

	return trimSpaceBounds(s, lo, hi)
}

func trimSpaceBounds(s string, lo, hi int) (int, int) {
	rest := strings.TrimLeftFunc(s[lo:hi], IsSpace)
	lo = hi - len(rest)
	rest = strings.TrimRightFunc(s[lo:hi], IsSpace)
	return lo, lo + len(rest)
}

// IsSpace reports whether r is whitespace, counting the byte order mark.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// ContainsSpace reports whether s contains any whitespace.
func ContainsSpace(s string) bool {
	return strings.IndexFunc(s, IsSpace) >= 0
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
