package domain

// Artist identifies a performing artist on a track.
type Artist struct {
	ID     string
	Name   string
	Genres []string
}

// Track represents a provider track in the domain layer.
// Artists keeps the provider's billing order; the first entry is the primary artist.
type Track struct {
	ID       string
	URI      string
	Title    string
	Artists  []Artist
	Album    string             // optional
	Features map[string]float64 // audio features like "energy", "valence", etc.
}

// PrimaryArtist returns the first billed artist, or a zero Artist for an empty list.
func (t Track) PrimaryArtist() Artist {
	if len(t.Artists) == 0 {
		return Artist{}
	}
	return t.Artists[0]
}

// ArtistNames returns the billed artist names in order.
func (t Track) ArtistNames() []string {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return names
}

// Playback is the user's current playback state: the playing track plus the
// device context needed to target queue calls.
type Playback struct {
	Track      Track
	DeviceID   string
	DeviceName string
}

// SearchPage is one window of provider search results.
type SearchPage struct {
	Tracks []Track
	Total  int
}

// TrackIdea is a title/artist pair proposed by a recommendation source that
// still needs to be resolved against the provider's catalog.
type TrackIdea struct {
	Title  string
	Artist string
}
