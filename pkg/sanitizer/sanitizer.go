// Package sanitizer normalizes free-text input before validation. Only the
// display fields of a booking (title, note) pass through here; identifiers
// and date/time strings are validated, never rewritten.
package sanitizer

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// SanitizeTitle cleans a booking's event title: trimmed, inner whitespace
// collapsed, control characters removed.
func SanitizeTitle(input string) string {
	p := Pipeline{
		stripControl,
		TrimAndNormalize,
	}
	return p.Apply(input)
}

// SanitizeNote cleans a free-form note, preserving case and punctuation.
func SanitizeNote(input string) string {
	p := Pipeline{
		stripControl,
		TrimAndNormalize,
	}
	return p.Apply(input)
}
