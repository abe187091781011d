package metadata

import "testing"

func TestTranslationHint(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"El Padrino", "The Godfather"},
		{"el padrino", "The Godfather"},
		{"La Lista De Schindler", "Schindler's List"},
		{"The Godfather", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TranslationHint(tt.title); got != tt.want {
			t.Errorf("TranslationHint(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
