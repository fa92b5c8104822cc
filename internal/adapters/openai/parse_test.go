package openai

import "testing"

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `[{"track_name": "Fake Plastic Trees", "artist": "Radiohead"}, {"track_name": "Black Star", "artist": "Radiohead"}]`,
			want:    2,
		},
		{
			name: "fenced array",
			content: "```json\n" +
				`[{"track_name": "Fake Plastic Trees", "artist": "Radiohead"}]` +
				"\n```",
			want: 1,
		},
		{
			name:    "prose around the array",
			content: `Sure! Here are some picks: [{"track_name": "Fake Plastic Trees", "artist": "Radiohead"}] Enjoy!`,
			want:    1,
		},
		{
			name:    "entries without a title are dropped",
			content: `[{"track_name": "", "artist": "Nobody"}, {"track_name": "Black Star", "artist": "Radiohead"}]`,
			want:    1,
		},
		{
			name:    "no array at all",
			content: `I could not come up with recommendations.`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			content: `[{"track_name": "Oops"`,
			wantErr: true,
		},
		{
			name:    "only empty entries",
			content: `[{"track_name": "", "artist": ""}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ideas, err := parseSuggestions(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSuggestions() = %v, want error", ideas)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSuggestions() error: %v", err)
			}
			if len(ideas) != tt.want {
				t.Fatalf("got %d ideas, want %d", len(ideas), tt.want)
			}
		})
	}
}

func TestParseSuggestions_PreservesOrder(t *testing.T) {
	ideas, err := parseSuggestions(`[
		{"track_name": "One", "artist": "A"},
		{"track_name": "Two", "artist": "B"},
		{"track_name": "Three", "artist": "C"}
	]`)
	if err != nil {
		t.Fatalf("parseSuggestions() error: %v", err)
	}

	want := []string{"One", "Two", "Three"}
	for i, idea := range ideas {
		if idea.Title != want[i] {
			t.Fatalf("idea %d: got %q, want %q", i, idea.Title, want[i])
		}
	}
}
