package urlcheck

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"github.com/nao1215/safescan/internal/model"
)

// SuspiciousKeywords are substrings that mark a host as unsafe.
var SuspiciousKeywords = []string{
	"login", "verify", "update", "secure", "account",
	"free", "bonus", "click", "bank",
}

// MaxHostDots is the most dots a host may contain before it is flagged.
const MaxHostDots = 3

// hostProfile converts hosts the way browsers do: UTS #46 non-transitional
// mapping without the STD3 and hyphen restrictions.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.Transitional(false),
	idna.CheckHyphens(false),
	idna.StrictDomainName(false),
)

// Result is the outcome of Check.
type Result struct {
	Safe   bool
	Reason model.ReasonCode
	// Host is the ASCII host the rules ran against; empty when parsing failed.
	Host string
}

// Check judges a single URL candidate. Rules run in order and the first
// failing rule decides the reason.
func Check(candidate string) Result {
	raw := strings.TrimFunc(candidate, IsSpace)
	if !hasPrefixFold(raw, "http://") && !hasPrefixFold(raw, "https://") {
		raw = "http://" + raw
	}

	host, ok := parseHost(raw)
	if !ok {
		return Result{Safe: false, Reason: model.ReasonInvalidFormat}
	}

	for _, kw := range SuspiciousKeywords {
		if strings.Contains(host, kw) {
			return Result{Safe: false, Reason: model.ReasonSuspiciousKeyword, Host: host}
		}
	}

	if strings.Count(host, ".") > MaxHostDots {
		return Result{Safe: false, Reason: model.ReasonTooManySubdomains, Host: host}
	}

	return Result{Safe: true, Reason: model.ReasonLooksSafe, Host: host}
}

// Verdict runs Check and wraps the result as a URL verdict.
func Verdict(candidate string) model.URLVerdict {
	r := Check(candidate)
	return model.NewURLVerdict(candidate, r.Safe, r.Reason)
}

// authority cuts rawURL after its host and port so that escapes in the
// path, query or fragment cannot fail parsing.
func authority(rawURL string) string {
	i := strings.Index(rawURL, "://")
	if i < 0 {
		return rawURL
	}
	rest := rawURL[i+3:]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	return rawURL[:i+3] + rest
}

// parseHost returns the lowercase ASCII host of rawURL.
func parseHost(rawURL string) (string, bool) {
	u, err := url.Parse(authority(rawURL))
	if err != nil {
		return "", false
	}

	host := u.Hostname()
	if host == "" {
		return "", false
	}

	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > 65535 {
			return "", false
		}
	}

	host = strings.ToLower(host)
	if net.ParseIP(host) != nil {
		return host, true
	}

	ascii, err := hostProfile.ToASCII(host)
	if err != nil || ascii == "" {
		return "", false
	}
	return ascii, true
}
