package spotify

import "testing"

func TestNormalizeSearchInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Hello",
			want:  "hello",
		},
		{
			name:  "drops bracketed segment",
			input: "Song (Live at Wembley)",
			want:  "song",
		},
		{
			name:  "drops noise tokens",
			input: "Track - Remastered 2011",
			want:  "track 2011",
		},
		{
			name:  "punctuation to spaces",
			input: "AC/DC",
			want:  "ac dc",
		},
		{
			name:  "noise word inside a title survives as part of other tokens",
			input: "Forever Young",
			want:  "forever young",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeSearchInput(tt.input)
			if got != tt.want {
				t.Fatalf("normalizeSearchInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "kitten sitting",
			a:    "kitten",
			b:    "sitting",
			want: 3,
		},
		{
			name: "empty to word",
			a:    "",
			b:    "sound",
			want: 5,
		},
		{
			name: "identical",
			a:    "radiohead",
			b:    "radiohead",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levenshteinDistance(tt.a, tt.b)
			if got != tt.want {
				t.Fatalf("distance: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreTrackMatch(t *testing.T) {
	candidate := func(title string, artists ...string) trackObject {
		tr := trackObject{Name: title}
		for _, a := range artists {
			tr.Artists = append(tr.Artists, artistRef{Name: a})
		}
		return tr
	}

	t.Run("exact match is fully confident", func(t *testing.T) {
		score, ok := scoreTrackMatch("Creep", "Radiohead", candidate("Creep", "Radiohead"))
		if !ok || score < 0.99 {
			t.Fatalf("got score=%.3f ok=%v", score, ok)
		}
	})

	t.Run("reissue suffix does not break the match", func(t *testing.T) {
		score, ok := scoreTrackMatch("Creep", "Radiohead", candidate("Creep - Remastered 2009", "Radiohead"))
		if !ok || score < 0.9 {
			t.Fatalf("got score=%.3f ok=%v", score, ok)
		}
	})

	t.Run("right title on the wrong artist is not confident", func(t *testing.T) {
		_, ok := scoreTrackMatch("Creep", "Radiohead", candidate("Creep", "Karaoke Masters"))
		if ok {
			t.Fatal("a cover act cleared the confidence minimums")
		}
	})

	t.Run("unrelated track is not confident", func(t *testing.T) {
		score, ok := scoreTrackMatch("Creep", "Radiohead", candidate("Love Story", "Taylor Swift"))
		if ok || score > 0.4 {
			t.Fatalf("got score=%.3f ok=%v", score, ok)
		}
	})
}
