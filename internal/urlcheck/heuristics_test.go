package urlcheck

import (
	"testing"

	"github.com/nao1215/safescan/internal/model"
)

// TestCheck tests the URL rules in order.
func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate string
		wantSafe  bool
		wantCode  model.ReasonCode
		wantHost  string
	}{
		{
			name:      "keyword in host",
			candidate: "login-update-bank.com",
			wantCode:  model.ReasonSuspiciousKeyword,
			wantHost:  "login-update-bank.com",
		},
		{
			name:      "keyword check is case-insensitive",
			candidate: "https://SecureMail.com",
			wantCode:  model.ReasonSuspiciousKeyword,
			wantHost:  "securemail.com",
		},
		{
			name:      "keyword in path only is fine",
			candidate: "https://example.com/login",
			wantSafe:  true,
			wantCode:  model.ReasonLooksSafe,
			wantHost:  "example.com",
		},
		{
			name:      "five labels",
			candidate: "http://a.b.c.d.example.com/x",
			wantCode:  model.ReasonTooManySubdomains,
			wantHost:  "a.b.c.d.example.com",
		},
		{
			name:      "four dots",
			candidate: "a.b.c.example.com",
			wantCode:  model.ReasonTooManySubdomains,
			wantHost:  "a.b.c.example.com",
		},
		{
			name:      "three dots",
			candidate: "b.c.example.com",
			wantSafe:  true,
			wantCode:  model.ReasonLooksSafe,
			wantHost:  "b.c.example.com",
		},
		{
			name:      "uppercase scheme",
			candidate: "HTTPS://EXAMPLE.COM",
			wantSafe:  true,
			wantCode:  model.ReasonLooksSafe,
			wantHost:  "example.com",
		},
		{
			name:      "internationalized host",
			candidate: "bücher.example",
			wantSafe:  true,
			wantCode:  model.ReasonLooksSafe,
			wantHost:  "xn--bcher-kva.example",
		},
		{
			name:      "invalid escape in path",
			candidate: "example.com/100%off",
			wantSafe:  true,
			wantCode:  model.ReasonLooksSafe,
			wantHost:  "example.com",
		},
		{
			name:      "invalid escape in query",
			candidate: "https://shop.example.com/?q=50%zz#top",
			wantSafe:  true,
			wantCode:  model.ReasonLooksSafe,
			wantHost:  "shop.example.com",
		},
		{
			name:      "invalid escape in host",
			candidate: "http://exa%zzmple.com/",
			wantCode:  model.ReasonInvalidFormat,
		},
		{
			name:      "empty host",
			candidate: "http://",
			wantCode:  model.ReasonInvalidFormat,
		},
		{
			name:      "port out of range",
			candidate: "example.com:99999",
			wantCode:  model.ReasonInvalidFormat,
		},
		{
			name:      "space in host",
			candidate: "http://exa mple.com",
			wantCode:  model.ReasonInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Check(tt.candidate)
			if got.Safe != tt.wantSafe || got.Reason != tt.wantCode || got.Host != tt.wantHost {
				t.Errorf("Check(%q) = %+v, want {Safe:%v Reason:%v Host:%q}",
					tt.candidate, got, tt.wantSafe, tt.wantCode, tt.wantHost)
			}
		})
	}
}

// TestVerdict tests the fixed heuristic confidences.
func TestVerdict(t *testing.T) {
	t.Parallel()

	safe := Verdict("example.com")
	if safe.Class != model.ClassSafe || safe.Confidence != 90 || safe.URL != "example.com" {
		t.Errorf("Verdict(safe) = %+v", safe)
	}

	unsafe := Verdict("free-bonus.example")
	if unsafe.Class != model.ClassUnsafe || unsafe.Confidence != 85 || unsafe.Reason != model.ReasonSuspiciousKeyword {
		t.Errorf("Verdict(unsafe) = %+v", unsafe)
	}
}
