package content

import (
	"reflect"
	"testing"

	"github.com/rekabarchive/memorial-service/internal/types"
)

func sampleTracks() []types.MusicTrack {
	return []types.MusicTrack{
		{ID: "1", Title: "Echo", Description: "Layered loops", Genre: "Ambient"},
		{ID: "2", Title: "Morning Reflections", Description: "Piano piece", Genre: "Classical"},
		{ID: "3", Title: "Night Drive", Description: "An echo of the city", Genre: "Electronic"},
	}
}

func TestFilter_NeutralFiltersAreIdentity(t *testing.T) {
	tracks := sampleTracks()

	got := Filter(tracks, "", AllFacet)
	if !reflect.DeepEqual(got, tracks) {
		t.Errorf("Expected neutral filter to return all records, got %d of %d", len(got), len(tracks))
	}
}

func TestFilter_CaseInsensitiveSearch(t *testing.T) {
	tracks := sampleTracks()

	for _, term := range []string{"echo", "ECHO", "Echo"} {
		got := Filter(tracks, term, AllFacet)
		if len(got) != 2 {
			t.Errorf("Term %q: expected 2 matches (title and description), got %d", term, len(got))
		}
	}
}

func TestFilter_SearchMatchesDescription(t *testing.T) {
	got := Filter(sampleTracks(), "piano", AllFacet)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Expected description match on track 2, got %v", got)
	}
}

func TestFilter_FacetAndTermCombine(t *testing.T) {
	got := Filter(sampleTracks(), "echo", "Electronic")
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("Expected only the Electronic echo match, got %v", got)
	}
}

func TestFilter_NoMatchesYieldsEmpty(t *testing.T) {
	got := Filter(sampleTracks(), "vocals", AllFacet)
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	tracks := sampleTracks()

	once := Filter(tracks, "echo", AllFacet)
	twice := Filter(once, "echo", AllFacet)
	if !reflect.DeepEqual(once, twice) {
		t.Error("Expected filtering an already-filtered set to be a no-op")
	}
}

func TestFacets_DedupedWithAllSentinel(t *testing.T) {
	images := []types.GalleryImage{
		{Category: "Studio"},
		{Category: "Live"},
		{Category: "Studio"},
		{Category: "Nature"},
	}

	got := Facets(images)
	want := []string{AllFacet, "Live", "Nature", "Studio"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFacets_EmptyCollectionKeepsSentinel(t *testing.T) {
	got := Facets([]types.GalleryImage{})
	if len(got) != 1 || got[0] != AllFacet {
		t.Errorf("Expected [%s] for empty collection, got %v", AllFacet, got)
	}
}
