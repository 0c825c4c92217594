package urlcheck

import "regexp"

// Pass identifies which extraction pass produced a span.
type Pass int

const (
	// PassScheme matches http:// and https:// URLs.
	PassScheme Pass = iota
	// PassWWW matches URLs starting with "www.".
	PassWWW
	// PassBare matches bare dotted domains with an optional port and path.
	PassBare
)

// Span is a raw match. Start and End are byte offsets into the scanned text.
type Span struct {
	Start int
	End   int
	Pass  Pass
}

// Matcher returns raw URL spans in pass order. Bare domain spans that
// overlap a scheme or www span are already removed.
type Matcher interface {
	Match(text string) []Span
}

// urlChars excludes whitespace (including Unicode spaces and BOM) and the
// characters that usually delimit a URL in prose or markup.
const urlChars = `[^\s\v\p{Z}\x{FEFF}<>"]`

var (
	schemePattern = regexp.MustCompile(`(?i)https?://` + urlChars + `+`)
	wwwPattern    = regexp.MustCompile(`(?i)\bwww\.` + urlChars + `+`)
	barePattern   = regexp.MustCompile(`(?i)\b(?:[a-z0-9-]+\.)+[a-z]{2,}(?::\d{2,5})?(?:/` + urlChars + `*)?\b`)
)

// RegexpMatcher is the default Matcher.
type RegexpMatcher struct{}

// Match implements Matcher.
func (RegexpMatcher) Match(text string) []Span {
	if text == "" {
		return nil
	}

	var claimed, spans []Span
	passes := []struct {
		pass    Pass
		pattern *regexp.Regexp
	}{
		{PassScheme, schemePattern},
		{PassWWW, wwwPattern},
		{PassBare, barePattern},
	}

	for _, p := range passes {
		var found []Span
		for _, loc := range p.pattern.FindAllStringIndex(text, -1) {
			span := Span{Start: loc[0], End: loc[1], Pass: p.pass}
			if p.pass == PassBare && overlapsAny(span, claimed) {
				continue
			}
			found = append(found, span)
		}
		spans = append(spans, found...)
		claimed = append(claimed, found...)
	}

	return spans
}

func overlapsAny(s Span, claimed []Span) bool {
	for _, c := range claimed {
		if s.Start < c.End && c.Start < s.End {
			return true
		}
	}
	return false
}
