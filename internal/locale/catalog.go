package locale

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/nao1215/safescan/internal/model"
)

// Key names a display string.
type Key string

// Display string keys.
const (
	KeyBrand          Key = "brand"
	KeyTagline        Key = "tagline"
	KeySafe           Key = "safe"
	KeyUnsafe         Key = "unsafe"
	KeyConfidence     Key = "confidence"
	KeyURL            Key = "url"
	KeyURLs           Key = "urls"
	KeyText           Key = "text"
	KeyEmail          Key = "email"
	KeyInput          Key = "input"
	KeyReason         Key = "reason"
	KeyResult         Key = "result"
	KeyTime           Key = "time"
	KeyTextAnalysis   Key = "text_analysis_title"
	KeyURLChecks      Key = "url_checks_title"
	KeyURLsNone       Key = "urls_none"
	KeyHistoryTitle   Key = "history_title"
	KeyHistoryEmpty   Key = "history_empty"
	KeyHistoryCleared Key = "history_cleared"
	KeyPrivacyNote    Key = "privacy_note"
	KeyFooter         Key = "footer"
)

var english = map[Key]string{
	KeyBrand:          "SafeScan",
	KeyTagline:        "Phishing & scam detection",
	KeySafe:           "Safe",
	KeyUnsafe:         "Unsafe",
	KeyConfidence:     "Confidence",
	KeyURL:            "URL",
	KeyURLs:           "URLs",
	KeyText:           "Text",
	KeyEmail:          "Email",
	KeyInput:          "Input",
	KeyReason:         "Reason",
	KeyResult:         "Result",
	KeyTime:           "Time",
	KeyTextAnalysis:   "Text analysis",
	KeyURLChecks:      "URL checks",
	KeyURLsNone:       "No URLs detected in this input.",
	KeyHistoryTitle:   "History",
	KeyHistoryEmpty:   "No scans yet. Your previous checks will appear here.",
	KeyHistoryCleared: "History cleared.",
	KeyPrivacyNote:    "Input is only used to generate this result.",
	KeyFooter:         "Always verify before you click.",

	messageKey(model.MessageInvalidFormat):     "Invalid URL format",
	messageKey(model.MessageSuspiciousKeyword): "Suspicious keyword found in domain",
	messageKey(model.MessageTooManySubdomains): "Too many subdomains",
	messageKey(model.MessageLooksSafe):         "URL looks safe",
	messageKey(model.MessageTextSafe):          "No obvious red flags were detected in the text.",
	messageKey(model.MessageTextUnsafe):        "This text looks suspicious and may be phishing or a scam.",
}

var arabic = map[Key]string{
	KeyBrand:          "SafeScan",
	KeyTagline:        "كشف التصيّد والاحتيال",
	KeySafe:           "آمن",
	KeyUnsafe:         "غير آمن",
	KeyConfidence:     "مستوى الثقة",
	KeyURL:            "رابط",
	KeyURLs:           "الروابط",
	KeyText:           "نص",
	KeyEmail:          "بريد",
	KeyInput:          "المدخل",
	KeyReason:         "السبب",
	KeyResult:         "النتيجة",
	KeyTime:           "الوقت",
	KeyTextAnalysis:   "تحليل النص",
	KeyURLChecks:      "فحص الروابط",
	KeyURLsNone:       "لم يتم العثور على روابط في هذا النص.",
	KeyHistoryTitle:   "السجل",
	KeyHistoryEmpty:   "لا يوجد سجل بعد. ستظهر نتائج التحقق السابقة هنا.",
	KeyHistoryCleared: "تم مسح السجل.",
	KeyPrivacyNote:    "يُستخدم الإدخال فقط لإظهار النتيجة.",
	KeyFooter:         "تحقّق دائمًا قبل الضغط على أي رابط.",

	messageKey(model.MessageInvalidFormat):     "صيغة الرابط غير صحيحة",
	messageKey(model.MessageSuspiciousKeyword): "تم العثور على كلمة مشبوهة في النطاق",
	messageKey(model.MessageTooManySubdomains): "يوجد عدد كبير من النطاقات الفرعية",
	messageKey(model.MessageLooksSafe):         "يبدو الرابط آمنًا",
	messageKey(model.MessageTextSafe):          "لم يتم رصد مؤشرات واضحة على الخطر في النص.",
	messageKey(model.MessageTextUnsafe):        "يبدو هذا النص مشبوهًا وقد يكون تصيّدًا أو احتيالًا.",
}

func messageKey(code model.MessageCode) Key {
	return Key("msg." + string(code))
}

// supported lists the catalogs in matcher order. The first entry is the fallback.
var supported = []struct {
	tag     language.Tag
	strings map[Key]string
	summary func(c *Catalog, s model.Summary) string
}{
	{language.English, english, englishURLPart},
	{language.Arabic, arabic, arabicURLPart},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

// Catalog is the set of display strings for one language.
type Catalog struct {
	tag     language.Tag
	strings map[Key]string
	urlPart func(c *Catalog, s model.Summary) string
}

// New returns the catalog that best matches the given language preferences.
// Each argument may be a single tag ("ar") or an Accept-Language list
// ("ar-EG,ar;q=0.9,en;q=0.8").
func New(prefs ...string) *Catalog {
	_, index := language.MatchStrings(matcher, prefs...)
	s := supported[index]
	return &Catalog{tag: s.tag, strings: s.strings, urlPart: s.summary}
}

// English returns the English catalog.
func English() *Catalog {
	return New("en")
}

// Supported returns the base tags of the built-in catalogs.
func Supported() []string {
	langs := make([]string, len(supported))
	for i, s := range supported {
		langs[i] = s.tag.String()
	}
	return langs
}

// Lang returns the catalog's language tag, e.g. "en" or "ar".
func (c *Catalog) Lang() string {
	return c.tag.String()
}

// RTL reports whether the language is written right to left.
func (c *Catalog) RTL() bool {
	return c.tag == language.Arabic
}

// T returns the string for key. Unknown keys fall back to English and then
// to the key itself.
func (c *Catalog) T(key Key) string {
	if s, ok := c.strings[key]; ok {
		return s
	}
	if s, ok := english[key]; ok {
		return s
	}
	return string(key)
}

// Class returns the label for a verdict class.
func (c *Catalog) Class(class model.Class) string {
	if class.IsUnsafe() {
		return c.T(KeyUnsafe)
	}
	return c.T(KeySafe)
}

// Kind returns the label for a result kind.
func (c *Catalog) Kind(kind model.Kind) string {
	switch kind {
	case model.KindURL:
		return c.T(KeyURL)
	case model.KindEmail:
		return c.T(KeyEmail)
	default:
		return c.T(KeyText)
	}
}

// Reason returns the display string for a URL reason code.
func (c *Catalog) Reason(reason model.ReasonCode) string {
	return c.Message(model.ReasonMessage(reason))
}

// Message renders a locale-neutral message.
func (c *Catalog) Message(m model.Message) string {
	if m.Code == model.MessageSummary {
		if m.Summary == nil {
			return c.T(KeyURLsNone)
		}
		return c.Summary(*m.Summary)
	}
	return c.T(messageKey(m.Code))
}

// Summary renders the text class together with the URL counts,
// e.g. "Text: Safe • URLs: 2 checked (1 unsafe)".
func (c *Catalog) Summary(s model.Summary) string {
	urls := c.T(KeyURLsNone)
	if s.URLsTotal > 0 {
		urls = c.urlPart(c, s)
	}
	return fmt.Sprintf("%s: %s • %s", c.T(KeyText), c.Class(s.TextClass), urls)
}

func englishURLPart(c *Catalog, s model.Summary) string {
	return fmt.Sprintf("%s: %d checked (%d unsafe)", c.T(KeyURLs), s.URLsTotal, s.URLsUnsafe)
}

func arabicURLPart(c *Catalog, s model.Summary) string {
	return fmt.Sprintf("%s: %d (%s: %d)", c.T(KeyURLs), s.URLsTotal, c.T(KeyUnsafe), s.URLsUnsafe)
}
