package model

// MessageCode identifies the message attached to a verdict.
// URL reason codes double as message codes on the URL-only path.
type MessageCode string

const (
	MessageInvalidFormat     = MessageCode(ReasonInvalidFormat)
	MessageSuspiciousKeyword = MessageCode(ReasonSuspiciousKeyword)
	MessageTooManySubdomains = MessageCode(ReasonTooManySubdomains)
	MessageLooksSafe         = MessageCode(ReasonLooksSafe)

	// MessageTextSafe is the model's "no obvious red flags" message.
	MessageTextSafe MessageCode = "TextSafe"

	// MessageTextUnsafe is the model's "looks like phishing or a scam" message.
	MessageTextUnsafe MessageCode = "TextUnsafe"

	// MessageSummary combines the text verdict with URL counts.
	MessageSummary MessageCode = "Summary"
)

// Message is a locale-neutral message. The locale package renders it.
type Message struct {
	// Code selects the message template.
	Code MessageCode `json:"code"`

	// Summary carries the values for MessageSummary; nil otherwise.
	Summary *Summary `json:"summary,omitempty"`
}

// Summary holds the values rendered into a summary message.
type Summary struct {
	TextClass  Class `json:"textClass"`
	URLsTotal  int   `json:"urlsTotal"`
	URLsUnsafe int   `json:"urlsUnsafe"`
}

// ReasonMessage wraps a URL reason code as a message.
func ReasonMessage(reason ReasonCode) Message {
	return Message{Code: MessageCode(reason)}
}

// TextMessage returns the model-driven message for a text class.
func TextMessage(class Class) Message {
	if class.IsUnsafe() {
		return Message{Code: MessageTextUnsafe}
	}
	return Message{Code: MessageTextSafe}
}

// SummaryMessage builds a summary message.
func SummaryMessage(textClass Class, total, unsafe int) Message {
	return Message{
		Code: MessageSummary,
		Summary: &Summary{
			TextClass:  textClass,
			URLsTotal:  total,
			URLsUnsafe: unsafe,
		},
	}
}

// URLVerdict is the heuristic judgement for one URL.
type URLVerdict struct {
	URL        string     `json:"url"`
	Class      Class      `json:"class"`
	Reason     ReasonCode `json:"reasonCode"`
	Confidence float64    `json:"confidence"`
}

// NewURLVerdict builds a verdict with the fixed heuristic confidence.
func NewURLVerdict(url string, safe bool, reason ReasonCode) URLVerdict {
	return URLVerdict{
		URL:        url,
		Class:      ClassOf(safe),
		Reason:     reason,
		Confidence: URLConfidence(safe),
	}
}

// TextVerdict is the model's judgement for the whole input text.
type TextVerdict struct {
	Class      Class   `json:"class"`
	Confidence float64 `json:"confidence"`

	// RawScore is the decision function value (intercept + coef·x).
	RawScore float64 `json:"rawScore"`

	Message Message `json:"message"`
}

// AnalysisResult is the merged verdict for one input.
type AnalysisResult struct {
	// Input is the analysed text after truncation and trimming.
	Input string `json:"input"`

	Kind  Kind  `json:"kind"`
	Class Class `json:"class"`

	// Confidence is nil when no verdict contributed to the chosen class.
	Confidence *float64 `json:"confidence"`

	Message Message `json:"message"`

	// TextVerdict is nil on the URL-only path.
	TextVerdict *TextVerdict `json:"textVerdict"`

	// URLVerdicts is never nil so that it encodes as [] rather than null.
	URLVerdicts []URLVerdict `json:"urlVerdicts"`
}

// UnsafeURLCount returns the number of URL verdicts classed unsafe.
func (r *AnalysisResult) UnsafeURLCount() int {
	n := 0
	for _, v := range r.URLVerdicts {
		if v.Class.IsUnsafe() {
			n++
		}
	}
	return n
}

// HasConfidence reports whether a confidence value is present.
func (r *AnalysisResult) HasConfidence() bool {
	return r.Confidence != nil
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
