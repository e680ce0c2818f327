// package views reduces the catalog's nested response models to flat,
// JSON-safe records.
//
// Two shapes exist: a search view (an ordered list of summary records) and a
// detail view (one richer record). Both are governed by fixed per-entity
// allow-lists; any field whose raw value is itself a nested model is
// recursively flattened before inclusion. Dispatch is an explicit type
// switch over the concrete model types, so recursion depth is bounded by the
// allow-list tables and no reflection is involved.
package views

import (
	"fmt"

	"github.com/Overboard/AskMinstrel/internal/catalog"
	"github.com/Overboard/AskMinstrel/internal/shared"
)

// Record is one flattened, JSON-safe mapping.
type Record = map[string]any

// searchFields is the allow-list for summary records, keyed by entity type.
// An album's track listing uses the compact sub-track variant because those
// items carry no album context of their own.
var searchFields = map[string][]string{
	"artist":    {"id", "name", "genres", "images"},
	"album":     {"id", "name", "artists", "release_date", "images"},
	"track":     {"id", "name", "artists", "album"},
	"sub_track": {"id", "name", "disc_number", "track_number", "duration_ms"},
}

// detailFields is the allow-list for detail records, keyed by entity type.
var detailFields = map[string][]string{
	"artist":         {"id", "name", "popularity", "genres", "images"},
	"album":          {"id", "name", "popularity", "genres", "release_date", "total_tracks", "label", "artists", "images"},
	"track":          {"id", "name", "popularity", "disc_number", "track_number", "artists", "album", "duration_ms"},
	"audio_features": {"danceability", "energy", "valence"},
}

// fielder is satisfied by every catalog model that exposes its raw fields by
// wire name.
type fielder interface {
	Fields() map[string]any
}

// SearchRecords converts a page of catalog models into an ordered list of
// summary records, one per contained item, preserving source order. Page
// types without a search allow-list produce [shared.ErrUnsupportedModel].
func SearchRecords(page any) ([]Record, error) {
	switch p := page.(type) {
	case *catalog.ArtistPage:
		return recordList("artist", p.Items)
	case *catalog.AlbumPage:
		return recordList("album", p.Items)
	case *catalog.FullTrackPage:
		return recordList("track", p.Items)
	case *catalog.SimpleTrackPage:
		return recordList("sub_track", p.Items)
	default:
		return nil, fmt.Errorf("%w: no search view for %T", shared.ErrUnsupportedModel, page)
	}
}

// DetailRecord converts one catalog model into its detail record. Model
// types without a detail allow-list produce [shared.ErrUnsupportedModel].
func DetailRecord(model any) (Record, error) {
	switch m := model.(type) {
	case *catalog.FullArtist:
		return record("artist", detailFields, m)
	case *catalog.FullAlbum:
		return record("album", detailFields, m)
	case *catalog.FullTrack:
		return record("track", detailFields, m)
	case *catalog.AudioFeatures:
		return record("audio_features", detailFields, m)
	default:
		return nil, fmt.Errorf("%w: no detail view for %T", shared.ErrUnsupportedModel, model)
	}
}

// recordList maps the per-item record builder over a page's items.
func recordList[T fielder](entity string, items []T) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := record(entity, searchFields, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// record builds one flattened record from the allow-list row for entity.
// A record whose id field is listed but empty violates the remote contract
// and is rejected rather than rendered as a hollow result.
func record(entity string, table map[string][]string, model fielder) (Record, error) {
	keys, ok := table[entity]
	if !ok {
		return nil, fmt.Errorf("%w: no allow-list for %q", shared.ErrUnsupportedModel, entity)
	}

	fields := model.Fields()
	rec := make(Record, len(keys))
	for _, k := range keys {
		rec[k] = flatten(fields[k])
	}

	if id, listed := rec["id"]; listed && (id == nil || id == "") {
		return nil, fmt.Errorf("%w: %s record without id", shared.ErrMalformedResult, entity)
	}
	if name, listed := rec["name"]; listed && (name == nil || name == "") {
		return nil, fmt.Errorf("%w: %s record without name", shared.ErrMalformedResult, entity)
	}
	return rec, nil
}

// flatten reduces one raw field value to a JSON-safe leaf.
//
// Containers of images or references are degenerate one-element collections
// in the views we build: only the first element survives, and an empty
// container flattens to nil rather than an empty placeholder. Nested
// references reduce to {id, type, name}; images reduce to their URL. Any
// other value is already a JSON-safe leaf and passes through unchanged.
func flatten(v any) any {
	switch x := v.(type) {
	case []catalog.Image:
		if len(x) == 0 {
			return nil
		}
		return x[0].URL
	case catalog.Image:
		return x.URL
	case []catalog.ArtistRef:
		if len(x) == 0 {
			return nil
		}
		return refRecord(x[0].ID, x[0].Type, x[0].Name)
	case catalog.ArtistRef:
		return refRecord(x.ID, x.Type, x.Name)
	case catalog.AlbumRef:
		return refRecord(x.ID, x.Type, x.Name)
	default:
		return v
	}
}

// refRecord is the {id, type, name} leaf for a nested reference. The id is
// always present; type and name may be absent on compact objects and map to
// null so consumers can rely on the key set.
func refRecord(id, typ, name string) Record {
	rec := Record{"id": id, "type": nil, "name": nil}
	if typ != "" {
		rec["type"] = typ
	}
	if name != "" {
		rec["name"] = name
	}
	return rec
}
