package locale

import (
	"testing"

	"github.com/nao1215/safescan/internal/model"
)

// TestNew tests language matching and fallback.
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{name: "english", prefs: []string{"en"}, want: "en"},
		{name: "arabic", prefs: []string{"ar"}, want: "ar"},
		{name: "regional arabic", prefs: []string{"ar-EG"}, want: "ar"},
		{name: "accept-language list", prefs: []string{"fr-FR,ar;q=0.9,en;q=0.5"}, want: "ar"},
		{name: "unsupported falls back", prefs: []string{"ja"}, want: "en"},
		{name: "garbage falls back", prefs: []string{"!!"}, want: "en"},
		{name: "no preference", prefs: nil, want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := New(tt.prefs...).Lang(); got != tt.want {
				t.Errorf("New(%v).Lang() = %q, want %q", tt.prefs, got, tt.want)
			}
		})
	}
}

// TestMessage tests rendering of every message code.
func TestMessage(t *testing.T) {
	t.Parallel()

	en := English()
	ar := New("ar")

	tests := []struct {
		msg    model.Message
		wantEn string
		wantAr string
	}{
		{
			msg:    model.ReasonMessage(model.ReasonInvalidFormat),
			wantEn: "Invalid URL format",
			wantAr: "صيغة الرابط غير صحيحة",
		},
		{
			msg:    model.ReasonMessage(model.ReasonSuspiciousKeyword),
			wantEn: "Suspicious keyword found in domain",
			wantAr: "تم العثور على كلمة مشبوهة في النطاق",
		},
		{
			msg:    model.ReasonMessage(model.ReasonTooManySubdomains),
			wantEn: "Too many subdomains",
			wantAr: "يوجد عدد كبير من النطاقات الفرعية",
		},
		{
			msg:    model.ReasonMessage(model.ReasonLooksSafe),
			wantEn: "URL looks safe",
			wantAr: "يبدو الرابط آمنًا",
		},
		{
			msg:    model.TextMessage(model.ClassSafe),
			wantEn: "No obvious red flags were detected in the text.",
			wantAr: "لم يتم رصد مؤشرات واضحة على الخطر في النص.",
		},
		{
			msg:    model.TextMessage(model.ClassUnsafe),
			wantEn: "This text looks suspicious and may be phishing or a scam.",
			wantAr: "يبدو هذا النص مشبوهًا وقد يكون تصيّدًا أو احتيالًا.",
		},
		{
			msg:    model.SummaryMessage(model.ClassSafe, 2, 1),
			wantEn: "Text: Safe • URLs: 2 checked (1 unsafe)",
			wantAr: "نص: آمن • الروابط: 2 (غير آمن: 1)",
		},
		{
			msg:    model.SummaryMessage(model.ClassUnsafe, 0, 0),
			wantEn: "Text: Unsafe • No URLs detected in this input.",
			wantAr: "نص: غير آمن • لم يتم العثور على روابط في هذا النص.",
		},
	}

	for _, tt := range tests {
		if got := en.Message(tt.msg); got != tt.wantEn {
			t.Errorf("en.Message(%v) = %q, want %q", tt.msg.Code, got, tt.wantEn)
		}
		if got := ar.Message(tt.msg); got != tt.wantAr {
			t.Errorf("ar.Message(%v) = %q, want %q", tt.msg.Code, got, tt.wantAr)
		}
	}
}

// TestLabels tests class and kind labels.
func TestLabels(t *testing.T) {
	t.Parallel()

	ar := New("ar")
	if got := ar.Class(model.ClassUnsafe); got != "غير آمن" {
		t.Errorf("Class(unsafe) = %q", got)
	}
	if got := ar.Kind(model.KindEmail); got != "بريد" {
		t.Errorf("Kind(email) = %q", got)
	}
	if !ar.RTL() || English().RTL() {
		t.Error("RTL() mismatch")
	}
	if got := English().T(Key("missing")); got != "missing" {
		t.Errorf("T(missing) = %q, want key back", got)
	}
}

// TestCatalogsComplete tests that every English key has an Arabic string.
func TestCatalogsComplete(t *testing.T) {
	t.Parallel()

	for key := range english {
		if _, ok := arabic[key]; !ok {
			t.Errorf("arabic catalog is missing %q", key)
		}
	}
}
