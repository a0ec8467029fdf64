package music

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/rekabarchive/memorial-service/internal/content"
	"github.com/rekabarchive/memorial-service/internal/mixcloud"
	"github.com/rekabarchive/memorial-service/internal/storage"
	"github.com/rekabarchive/memorial-service/internal/types"
)

type fakeStorage struct {
	storage.Storage
	tracks    []types.MusicTrack
	listErr   error
	created   []types.MusicTrack
	createErr error
}

func (f *fakeStorage) ListMusicTracks() ([]types.MusicTrack, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tracks, nil
}

func (f *fakeStorage) CreateMusicTrack(track types.MusicTrack) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, track)
	return "track-1", nil
}

type fakeObjectStore struct {
	uploads []string
	removed []string
}

func (f *fakeObjectStore) Upload(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error {
	f.uploads = append(f.uploads, objectKey)
	return nil
}

func (f *fakeObjectStore) Remove(ctx context.Context, objectKey string) error {
	f.removed = append(f.removed, objectKey)
	return nil
}

func (f *fakeObjectStore) PublicURL(objectKey string) string {
	return "http://storage.local/rekab/" + objectKey
}

type fakeLister struct {
	casts []mixcloud.Cloudcast
	err   error
}

func (f *fakeLister) Cloudcasts(ctx context.Context) ([]mixcloud.Cloudcast, error) {
	return f.casts, f.err
}

func TestList_SearchAndGenreFilter(t *testing.T) {
	store := &fakeStorage{tracks: []types.MusicTrack{
		{ID: "1", Title: "Echo", Genre: "Ambient"},
		{ID: "2", Title: "Morning Reflections", Description: "An echo of dawn", Genre: "Classical"},
		{ID: "3", Title: "Night Drive", Genre: "Electronic"},
	}}

	rec := httptest.NewRecorder()
	List(store, &fakeObjectStore{})(rec, httptest.NewRequest(http.MethodGet, "/api/music?q=ECHO&genre=Classical", nil))

	var envelope struct {
		Data ListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(envelope.Data.Tracks) != 1 || envelope.Data.Tracks[0].ID != "2" {
		t.Errorf("Expected the Classical echo match, got %v", envelope.Data.Tracks)
	}
	if envelope.Data.Genres[0] != content.AllFacet || len(envelope.Data.Genres) != 4 {
		t.Errorf("Expected full genre facet set with All sentinel, got %v", envelope.Data.Genres)
	}
}

func TestList_AuthErrorRendersSignInPrompt(t *testing.T) {
	store := &fakeStorage{listErr: fmt.Errorf("%w: jwt expired", storage.ErrAuthRequired)}

	rec := httptest.NewRecorder()
	List(store, &fakeObjectStore{})(rec, httptest.NewRequest(http.MethodGet, "/api/music", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}

	var envelope struct {
		Message string       `json:"message"`
		Data    ListResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !strings.Contains(envelope.Message, "Sign in") {
		t.Errorf("Expected sign-in prompt, got %q", envelope.Message)
	}
	if len(envelope.Data.Tracks) != 0 {
		t.Errorf("Expected empty collection, got %d tracks", len(envelope.Data.Tracks))
	}
	if len(envelope.Data.Genres) != 1 || envelope.Data.Genres[0] != content.AllFacet {
		t.Errorf("Expected bare All facet, got %v", envelope.Data.Genres)
	}
}

func TestUpload_AcceptsAudioFile(t *testing.T) {
	store := &fakeStorage{}
	objects := &fakeObjectStore{}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	mw.WriteField("title", "Morning Reflections")
	mw.WriteField("genre", "Classical")
	mw.WriteField("year", "2020")
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="morning-reflections.mp3"`)
	h.Set("Content-Type", "audio/mpeg")
	part, _ := mw.CreatePart(h)
	part.Write([]byte("mp3 bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/music", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	Upload(store, objects, 1<<20)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(objects.uploads) != 1 || !strings.HasPrefix(objects.uploads[0], "music/") {
		t.Fatalf("Expected one upload under music/, got %v", objects.uploads)
	}
	if len(store.created) != 1 || store.created[0].Genre != "Classical" {
		t.Fatalf("Expected one insert with genre Classical, got %v", store.created)
	}
	if store.created[0].Year == nil || *store.created[0].Year != 2020 {
		t.Errorf("Expected year 2020, got %v", store.created[0].Year)
	}
}

func TestUpload_MissingGenreRejected(t *testing.T) {
	objects := &fakeObjectStore{}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	mw.WriteField("title", "Untitled")
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="untitled.mp3"`)
	h.Set("Content-Type", "audio/mpeg")
	part, _ := mw.CreatePart(h)
	part.Write([]byte("mp3 bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/music", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	Upload(&fakeStorage{}, objects, 1<<20)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if len(objects.uploads) != 0 {
		t.Errorf("Expected zero storage invocations, got %d", len(objects.uploads))
	}
}

func TestCloudcasts(t *testing.T) {
	lister := &fakeLister{casts: []mixcloud.Cloudcast{
		{Key: "/rekab/night-session/", Name: "Night Session"},
	}}

	rec := httptest.NewRecorder()
	Cloudcasts(lister)(rec, httptest.NewRequest(http.MethodGet, "/api/music/cloudcasts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []mixcloud.Cloudcast `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Night Session" {
		t.Errorf("Expected relayed cloudcasts, got %v", envelope.Data)
	}
}

func TestCloudcasts_UpstreamFailure(t *testing.T) {
	lister := &fakeLister{err: errors.New("timeout")}

	rec := httptest.NewRecorder()
	Cloudcasts(lister)(rec, httptest.NewRequest(http.MethodGet, "/api/music/cloudcasts", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}
}
