package model

import "fmt"

// Class is the safety verdict attached to a text, a URL, or a whole analysis.
//
// Design decision: We use iota-based constants rather than string constants
// so that comparisons stay cheap, and implement encoding.TextMarshaler so the
// JSON form is the stable lowercase name consumed by the presentation layer.
type Class int

const (
	// ClassSafe means no red flags were found.
	ClassSafe Class = iota

	// ClassUnsafe means the model or a URL heuristic flagged the input.
	ClassUnsafe
)

// String returns the locale-neutral name of the class.
func (c Class) String() string {
	switch c {
	case ClassSafe:
		return "safe"
	case ClassUnsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

// IsUnsafe reports whether c is ClassUnsafe.
func (c Class) IsUnsafe() bool {
	return c == ClassUnsafe
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	switch c {
	case ClassSafe, ClassUnsafe:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("invalid class: %d", int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClass converts "safe" or "unsafe" into a Class.
func ParseClass(s string) (Class, error) {
	switch s {
	case "safe":
		return ClassSafe, nil
	case "unsafe":
		return ClassUnsafe, nil
	default:
		return ClassSafe, fmt.Errorf("invalid class: %q", s)
	}
}

// ClassOf maps a boolean "is safe" judgement to a Class.
func ClassOf(safe bool) Class {
	if safe {
		return ClassSafe
	}
	return ClassUnsafe
}

// Kind describes what the analyzer decided the input was.
type Kind string

const (
	// KindURL is a lone URL; only the heuristics ran.
	KindURL Kind = "url"

	// KindText is free text with no line breaks and no URLs.
	KindText Kind = "text"

	// KindEmail is multi-line text or text carrying at least one URL.
	KindEmail Kind = "email"
)

// ReasonCode explains a URL verdict. Values are stable identifiers that the
// locale catalog maps to display strings.
type ReasonCode string

const (
	// ReasonInvalidFormat means the URL could not be parsed or had no host.
	// Such URLs are treated as unsafe.
	ReasonInvalidFormat ReasonCode = "InvalidFormat"

	// ReasonSuspiciousKeyword means the host contains a phishing keyword.
	ReasonSuspiciousKeyword ReasonCode = "SuspiciousKeyword"

	// ReasonTooManySubdomains means the host has more than three dots.
	ReasonTooManySubdomains ReasonCode = "TooManySubdomains"

	// ReasonLooksSafe means no heuristic fired.
	ReasonLooksSafe ReasonCode = "LooksSafe"
)

// Fixed confidences attached to heuristic URL judgements. Heuristics are flat
// rules, so they carry a constant confidence instead of a probability.
const (
	URLSafeConfidence   = 90.0
	URLUnsafeConfidence = 85.0
)

// URLConfidence returns the fixed confidence for a heuristic verdict.
func URLConfidence(safe bool) float64 {
	if safe {
		return URLSafeConfidence
	}
	return URLUnsafeConfidence
}
