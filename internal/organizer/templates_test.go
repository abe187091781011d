package organizer

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{
			name:     "plain substitution",
			template: "{title} ({year})",
			values:   map[string]string{"title": "The Matrix", "year": "1999"},
			want:     "The Matrix (1999)",
		},
		{
			name:     "zero padded season and episode",
			template: "{title} - S{season:00}E{episode:00}",
			values:   map[string]string{"title": "Breaking Bad", "season": "1", "episode": "7"},
			want:     "Breaking Bad - S01E07",
		},
		{
			name:     "padding preserves wide numbers",
			template: "E{episode:00}",
			values:   map[string]string{"episode": "107"},
			want:     "E107",
		},
		{
			name:     "optional section kept when value present",
			template: "{title}[ ({year})]",
			values:   map[string]string{"title": "Up", "year": "2009"},
			want:     "Up (2009)",
		},
		{
			name:     "optional section dropped when value missing",
			template: "{title}[ ({year})]",
			values:   map[string]string{"title": "Up"},
			want:     "Up",
		},
		{
			name:     "missing value outside optional section leaves artifact cleanup to sanitize",
			template: "{title} ({year})",
			values:   map[string]string{"title": "Up"},
			want:     "Up",
		},
		{
			name:     "optional resolution tag",
			template: "{title}[ - {resolution}]",
			values:   map[string]string{"title": "Dune", "resolution": "2160p"},
			want:     "Dune - 2160p",
		},
		{
			name:     "unknown field renders empty",
			template: "{title} {nope}",
			values:   map[string]string{"title": "Up"},
			want:     "Up",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, tt.values); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mission: Impossible", "Mission Impossible"},
		{"What/If?", "WhatIf"},
		{"Movie <1999>", "Movie 1999"},
		{"A  B   C", "A B C"},
		{"Title - ", "Title"},
		{"- Title", "Title"},
		{"Title ()", "Title"},
		{"Title.", "Title"},
		{`Back\slash|Pipe*Star`, "BackslashPipeStar"},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.input); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
