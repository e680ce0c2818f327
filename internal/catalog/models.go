// Catalog API response types based on https://developer.spotify.com/documentation/web-api/reference/
package catalog

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ArtistRef is the compact artist object embedded in albums and tracks.
type ArtistRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// AlbumRef is the compact album object embedded in a full track.
type AlbumRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// FullArtist represents a complete artist object.
type FullArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Images     []Image  `json:"images"`
	Popularity int      `json:"popularity"`
}

// SimpleAlbum represents the album summary returned by searches and artist
// discographies.
type SimpleAlbum struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []ArtistRef `json:"artists"`
	ReleaseDate string      `json:"release_date"`
	Images      []Image     `json:"images"`
}

// FullAlbum represents a complete album object.
type FullAlbum struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Popularity  int         `json:"popularity"`
	Genres      []string    `json:"genres"`
	ReleaseDate string      `json:"release_date"`
	TotalTracks int         `json:"total_tracks"`
	Label       string      `json:"label"`
	Artists     []ArtistRef `json:"artists"`
	Images      []Image     `json:"images"`
}

// FullTrack represents a complete track object, including its album context.
type FullTrack struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Popularity  int         `json:"popularity"`
	DiscNumber  int         `json:"disc_number"`
	TrackNumber int         `json:"track_number"`
	Artists     []ArtistRef `json:"artists"`
	Album       AlbumRef    `json:"album"`
	DurationMS  int         `json:"duration_ms"`
}

// SimpleTrack represents the track summary returned by an album's track
// listing, which carries no album context of its own.
type SimpleTrack struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	DiscNumber  int         `json:"disc_number"`
	TrackNumber int         `json:"track_number"`
	DurationMS  int         `json:"duration_ms"`
	Artists     []ArtistRef `json:"artists"`
}

// AudioFeatures represents the audio analysis summary for one track.
type AudioFeatures struct {
	ID           string  `json:"id"`
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
}

// ArtistPage represents a paginated response of full artists.
type ArtistPage struct {
	Items  []FullArtist `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
	Next   *string      `json:"next"`
}

// AlbumPage represents a paginated response of album summaries.
type AlbumPage struct {
	Items  []SimpleAlbum `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Next   *string       `json:"next"`
}

// FullTrackPage represents a paginated response of full tracks.
type FullTrackPage struct {
	Items  []FullTrack `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Next   *string     `json:"next"`
}

// SimpleTrackPage represents a paginated response of track summaries.
type SimpleTrackPage struct {
	Items  []SimpleTrack `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Next   *string       `json:"next"`
}

// SearchResult is the envelope returned by the search endpoint. Exactly one
// page should be populated for a single-type query; the caller enforces that
// contract.
type SearchResult struct {
	Artists *ArtistPage    `json:"artists,omitempty"`
	Albums  *AlbumPage     `json:"albums,omitempty"`
	Tracks  *FullTrackPage `json:"tracks,omitempty"`
}

// Fields returns the raw field values keyed by their wire names, for
// allow-list driven record building.
func (a FullArtist) Fields() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"name":       a.Name,
		"genres":     a.Genres,
		"images":     a.Images,
		"popularity": a.Popularity,
	}
}

// Fields returns the raw field values keyed by their wire names.
func (a SimpleAlbum) Fields() map[string]any {
	return map[string]any{
		"id":           a.ID,
		"name":         a.Name,
		"artists":      a.Artists,
		"release_date": a.ReleaseDate,
		"images":       a.Images,
	}
}

// Fields returns the raw field values keyed by their wire names.
func (a FullAlbum) Fields() map[string]any {
	return map[string]any{
		"id":           a.ID,
		"name":         a.Name,
		"popularity":   a.Popularity,
		"genres":       a.Genres,
		"release_date": a.ReleaseDate,
		"total_tracks": a.TotalTracks,
		"label":        a.Label,
		"artists":      a.Artists,
		"images":       a.Images,
	}
}

// Fields returns the raw field values keyed by their wire names.
func (t FullTrack) Fields() map[string]any {
	return map[string]any{
		"id":           t.ID,
		"name":         t.Name,
		"popularity":   t.Popularity,
		"disc_number":  t.DiscNumber,
		"track_number": t.TrackNumber,
		"artists":      t.Artists,
		"album":        t.Album,
		"duration_ms":  t.DurationMS,
	}
}

// Fields returns the raw field values keyed by their wire names.
func (t SimpleTrack) Fields() map[string]any {
	return map[string]any{
		"id":           t.ID,
		"name":         t.Name,
		"disc_number":  t.DiscNumber,
		"track_number": t.TrackNumber,
		"duration_ms":  t.DurationMS,
		"artists":      t.Artists,
	}
}

// Fields returns the raw field values keyed by their wire names.
func (f AudioFeatures) Fields() map[string]any {
	return map[string]any{
		"id":           f.ID,
		"danceability": f.Danceability,
		"energy":       f.Energy,
		"valence":      f.Valence,
	}
}
