package spotify

import (
	"strings"
	"unicode"
)

// Suffix tokens that mark reissue noise rather than a different track.
var noiseTokens = map[string]struct{}{
	"clean":      {},
	"deluxe":     {},
	"edition":    {},
	"edit":       {},
	"explicit":   {},
	"feat":       {},
	"featuring":  {},
	"ft":         {},
	"live":       {},
	"mix":        {},
	"mono":       {},
	"radio":      {},
	"remaster":   {},
	"remastered": {},
	"stereo":     {},
	"version":    {},
}

const (
	titleWeight  = 0.7
	artistWeight = 0.3

	minTitleSimilarity  = 0.65
	minArtistSimilarity = 0.55
)

// scoreTrackMatch rates how well a candidate matches the requested
// title/artist pair. The boolean reports whether the candidate clears the
// per-component confidence minimums; a near-perfect title on the wrong
// artist must not resolve.
func scoreTrackMatch(title, artist string, candidate trackObject) (float64, bool) {
	wantTitle := normalizeSearchInput(title)
	wantArtist := normalizeSearchInput(artist)
	gotTitle := normalizeSearchInput(candidate.Name)
	gotArtist := normalizeSearchInput(joinArtistNames(candidate))

	if wantTitle == "" || gotTitle == "" {
		return 0, false
	}

	titleSim := similarity(wantTitle, gotTitle)
	if wantArtist == "" || gotArtist == "" {
		return titleWeight * titleSim, titleSim >= minTitleSimilarity
	}

	artistSim := similarity(wantArtist, gotArtist)
	score := titleWeight*titleSim + artistWeight*artistSim
	ok := titleSim >= minTitleSimilarity && artistSim >= minArtistSimilarity

	return score, ok
}

// normalizeSearchInput lowercases, strips bracketed segments and reissue
// noise tokens, and collapses separators to single spaces.
func normalizeSearchInput(input string) string {
	if input == "" {
		return ""
	}

	lower := strings.ToLower(input)
	filtered := stripBracketedSegments(lower)
	tokens := strings.Fields(cleanSeparators(filtered))

	cleaned := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, drop := noiseTokens[token]; drop {
			continue
		}
		cleaned = append(cleaned, token)
	}

	return strings.Join(cleaned, " ")
}

func stripBracketedSegments(input string) string {
	var out strings.Builder
	depth := 0
	for _, r := range input {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out.WriteRune(r)
			}
		}
	}

	return out.String()
}

func cleanSeparators(input string) string {
	var out strings.Builder
	lastSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
		}
	}

	return out.String()
}

func similarity(a string, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshteinDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

func levenshteinDistance(a string, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		copy(prev, curr)
	}

	return prev[len(rb)]
}

func joinArtistNames(track trackObject) string {
	if len(track.Artists) == 0 {
		return ""
	}
	parts := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		parts = append(parts, artist.Name)
	}
	return strings.Join(parts, " ")
}
