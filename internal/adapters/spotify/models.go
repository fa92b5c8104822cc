package spotify

import "github.com/radiogen/backend/internal/core/domain"

// artistRef is the abbreviated artist object embedded in tracks.
type artistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// artistObject is the full artist response, including genres.
type artistObject struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

type albumRef struct {
	Name string `json:"name"`
}

// trackObject models the Spotify track fields the radio flow consumes.
type trackObject struct {
	ID      string      `json:"id"`
	URI     string      `json:"uri"`
	Name    string      `json:"name"`
	Artists []artistRef `json:"artists"`
	Album   albumRef    `json:"album"`
}

type deviceObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// playbackResponse is the GET /me/player body.
type playbackResponse struct {
	Item   *trackObject `json:"item"`
	Device deviceObject `json:"device"`
}

// searchResponse is the GET /search body for type=track.
type searchResponse struct {
	Tracks struct {
		Items []trackObject `json:"items"`
		Total int           `json:"total"`
	} `json:"tracks"`
}

func (t trackObject) toDomain() domain.Track {
	artists := make([]domain.Artist, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, domain.Artist{ID: a.ID, Name: a.Name})
	}
	return domain.Track{
		ID:      t.ID,
		URI:     t.URI,
		Title:   t.Name,
		Artists: artists,
		Album:   t.Album.Name,
	}
}

func (a artistObject) toDomain() domain.Artist {
	return domain.Artist{ID: a.ID, Name: a.Name, Genres: a.Genres}
}
