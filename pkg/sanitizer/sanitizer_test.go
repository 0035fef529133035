package sanitizer

import "testing"

func TestSanitizeSearchTerm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Civic", "Civic"},
		{"whitespace collapsed", "  Toyota   Corolla ", "Toyota Corolla"},
		{"dot escaped", "4.0 TDI", `4\.0 TDI`},
		{"redos pattern neutralized", "(a+)+b", `\(a\+\)\+b`},
		{"brackets escaped", "[Dhaka]", `\[Dhaka\]`},
		{"backslash escaped", `a\b`, `a\\b`},
		{"pipe and star", "a|b*", `a\|b\*`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeSearchTerm(tt.input); got != tt.want {
				t.Errorf("SanitizeSearchTerm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeSearchTermIdempotent(t *testing.T) {
	// Escaping twice would double the backslashes, so idempotency only holds
	// for inputs without metacharacters - which is what reaches the store.
	input := "  Tesla   Model "
	once := SanitizeSearchTerm(input)
	if got := TrimAndNormalize(once); got != once {
		t.Errorf("normalization not stable: %q vs %q", got, once)
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" A@X.Com ", "a@x.com"},
		{"user@example.org", "user@example.org"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeEmail(tt.input); got != tt.want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"a  b\t c", "a b c"},
		{"\nconfirmed\n", "confirmed"},
	}

	for _, tt := range tests {
		if got := TrimAndNormalize(tt.input); got != tt.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
