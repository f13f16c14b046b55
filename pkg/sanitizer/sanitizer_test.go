package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Summer Festival  ",
			want:  "Summer Festival",
		},
		{
			name:  "collapse inner spaces",
			input: "Summer    Festival",
			want:  "Summer Festival",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "     ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Friends™ ",
			want:  "Café & Friends™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain title",
			input: "Acoustic Night",
			want:  "Acoustic Night",
		},
		{
			name:  "control characters removed",
			input: "Acoustic\x00 Night\x1b",
			want:  "Acoustic Night",
		},
		{
			name:  "padding trimmed",
			input: "   Acoustic   Night   ",
			want:  "Acoustic Night",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTitle(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeNote(t *testing.T) {
	got := SanitizeNote("  Load-in at 18:00,\x00 ask for  Dana.  ")
	want := "Load-in at 18:00, ask for Dana."
	if got != want {
		t.Errorf("SanitizeNote() = %q, want %q", got, want)
	}
}
