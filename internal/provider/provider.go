// package provider composes the catalog client, cache store, and view
// builders into the three read operations consumed by the presentation layer.
package provider

import (
	"context"
	"fmt"

	"github.com/Overboard/AskMinstrel/internal/cache"
	"github.com/Overboard/AskMinstrel/internal/catalog"
	"github.com/Overboard/AskMinstrel/internal/shared"
	"github.com/Overboard/AskMinstrel/internal/views"
	"github.com/charmbracelet/log"
)

// Catalog is the remote service surface the façade consumes. Satisfied by
// [catalog.Client]; narrowed to an interface so tests can count calls.
type Catalog interface {
	Search(ctx context.Context, query, entityType string) (*catalog.SearchResult, error)
	Artist(ctx context.Context, artistID string) (*catalog.FullArtist, error)
	ArtistAlbums(ctx context.Context, artistID string) (*catalog.AlbumPage, error)
	Album(ctx context.Context, albumID string) (*catalog.FullAlbum, error)
	AlbumTracks(ctx context.Context, albumID string) (*catalog.SimpleTrackPage, error)
	Track(ctx context.Context, trackID string) (*catalog.FullTrack, error)
	TrackAudioFeatures(ctx context.Context, trackID string) (*catalog.AudioFeatures, error)
}

// Detail is the entity-detail payload: the requested entity's detail record
// plus the summary records related to it (an artist's albums, an album's
// tracks).
type Detail struct {
	Primary views.Record   `json:"primary"`
	Related []views.Record `json:"related"`
}

// TrackInfo is the track-detail payload: track metadata stitched together
// with its audio-feature record.
type TrackInfo struct {
	Track views.Record `json:"track"`
	Audio views.Record `json:"audio"`
}

// Provider wraps every remote catalog call in signature-keyed memoization
// and reduces the raw responses to flat records.
type Provider struct {
	catalog Catalog
	store   *cache.Store
	logger  *log.Logger
}

// New creates a Provider.
func New(c Catalog, store *cache.Store, logger *log.Logger) *Provider {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Provider{catalog: c, store: store, logger: logger}
}

// Search performs a query for entities of a single type and returns their
// summary records in the order the service ranked them.
func (p *Provider) Search(ctx context.Context, entityType, query string) ([]views.Record, error) {
	logger := p.logger.With("request_id", shared.GenerateID(), "op", "search", "qtype", entityType)
	logger.Info("searching catalog", "query", query)

	result, err := cache.Cached(ctx, p.store, "search",
		map[string]string{"qtype": entityType, "query": query},
		func(ctx context.Context) (*catalog.SearchResult, error) {
			return p.catalog.Search(ctx, query, entityType)
		})
	if err != nil {
		return nil, err
	}

	page, err := singleTypePage(result, entityType)
	if err != nil {
		logger.Error("search response violated single-type contract", "err", err)
		return nil, err
	}
	return views.SearchRecords(page)
}

// EntityDetail returns the detail record for an artist or album together
// with its related summary list (albums for an artist, tracks for an album).
func (p *Provider) EntityDetail(ctx context.Context, entityType, id string) (*Detail, error) {
	logger := p.logger.With("request_id", shared.GenerateID(), "op", "detail", "qtype", entityType)
	logger.Info("fetching entity detail", "id", id)

	switch entityType {
	case "artist":
		artist, err := cache.Cached(ctx, p.store, "artist",
			map[string]string{"artist_id": id}, func(ctx context.Context) (*catalog.FullArtist, error) {
				return p.catalog.Artist(ctx, id)
			})
		if err != nil {
			return nil, err
		}
		albums, err := cache.Cached(ctx, p.store, "artist_albums",
			map[string]string{"artist_id": id}, func(ctx context.Context) (*catalog.AlbumPage, error) {
				return p.catalog.ArtistAlbums(ctx, id)
			})
		if err != nil {
			return nil, err
		}
		return buildDetail(artist, albums)

	case "album":
		album, err := cache.Cached(ctx, p.store, "album",
			map[string]string{"album_id": id}, func(ctx context.Context) (*catalog.FullAlbum, error) {
				return p.catalog.Album(ctx, id)
			})
		if err != nil {
			return nil, err
		}
		tracks, err := cache.Cached(ctx, p.store, "album_tracks",
			map[string]string{"album_id": id}, func(ctx context.Context) (*catalog.SimpleTrackPage, error) {
				return p.catalog.AlbumTracks(ctx, id)
			})
		if err != nil {
			return nil, err
		}
		return buildDetail(album, tracks)

	default:
		return nil, fmt.Errorf("%w: no detail operation for %q", shared.ErrUnsupportedModel, entityType)
	}
}

// TrackDetail returns a track's detail record stitched together with its
// audio-feature record, each backed by an independent cached call.
func (p *Provider) TrackDetail(ctx context.Context, id string) (*TrackInfo, error) {
	logger := p.logger.With("request_id", shared.GenerateID(), "op", "track")
	logger.Info("fetching track detail", "id", id)

	track, err := cache.Cached(ctx, p.store, "track",
		map[string]string{"track_id": id}, func(ctx context.Context) (*catalog.FullTrack, error) {
			return p.catalog.Track(ctx, id)
		})
	if err != nil {
		return nil, err
	}
	features, err := cache.Cached(ctx, p.store, "track_audio_features",
		map[string]string{"track_id": id}, func(ctx context.Context) (*catalog.AudioFeatures, error) {
			return p.catalog.TrackAudioFeatures(ctx, id)
		})
	if err != nil {
		return nil, err
	}

	trackRec, err := views.DetailRecord(track)
	if err != nil {
		return nil, err
	}
	audioRec, err := views.DetailRecord(features)
	if err != nil {
		return nil, err
	}
	return &TrackInfo{Track: trackRec, Audio: audioRec}, nil
}

// buildDetail assembles the primary detail record and its related summaries.
func buildDetail(primary any, related any) (*Detail, error) {
	primaryRec, err := views.DetailRecord(primary)
	if err != nil {
		return nil, err
	}
	relatedRecs, err := views.SearchRecords(related)
	if err != nil {
		return nil, err
	}
	return &Detail{Primary: primaryRec, Related: relatedRecs}, nil
}

// singleTypePage extracts the one populated page from a search response. A
// response carrying results for zero or multiple entity types, or for a type
// other than the one requested, violates the single-type query contract and
// is surfaced rather than silently narrowed.
func singleTypePage(result *catalog.SearchResult, entityType string) (any, error) {
	pages := map[string]any{}
	if result.Artists != nil {
		pages["artist"] = result.Artists
	}
	if result.Albums != nil {
		pages["album"] = result.Albums
	}
	if result.Tracks != nil {
		pages["track"] = result.Tracks
	}

	if len(pages) != 1 {
		return nil, fmt.Errorf("%w: expected results for exactly one type, got %d", shared.ErrContractViolation, len(pages))
	}
	page, ok := pages[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: response does not contain %q results", shared.ErrContractViolation, entityType)
	}
	return page, nil
}
