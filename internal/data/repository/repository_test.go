package repository

import (
	"context"
	"reflect"
	"testing"
	"time"

	"rythmons/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// fakeDB serves canned rows for Query and counts every round-trip so tests
// can assert a call never reached the database.
type fakeDB struct {
	rows  pgx.Rows
	calls int
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls++
	return f.rows, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.calls++
	panic("unexpected QueryRow")
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls++
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	f.calls++
	panic("unexpected Begin")
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }
func (f *fakeDB) Close()                         {}

// fakeRows walks a canned result set. Scan assigns each column value into
// the matching destination pointer; nil columns leave the zero value.
type fakeRows struct {
	data [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	for i, d := range dest {
		if row[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

// recordingGenreRepo captures which IDs the owning repository asked genres for.
type recordingGenreRepo struct {
	venueIDs  []uuid.UUID
	artistIDs []uuid.UUID
	genres    []*entity.Genre
}

func (r *recordingGenreRepo) FindByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.Genre, error) {
	r.venueIDs = append(r.venueIDs, venueID)
	return r.genres, nil
}

func (r *recordingGenreRepo) FindByArtistID(ctx context.Context, artistID uuid.UUID) ([]*entity.Genre, error) {
	r.artistIDs = append(r.artistIDs, artistID)
	return r.genres, nil
}

func testGenres() []*entity.Genre {
	return []*entity.Genre{
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, Name: "Jazz"},
		{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, Name: "Rock"},
	}
}

func TestVenueFindByOwnerLoadsGenresThroughGenreRepository(t *testing.T) {
	venueID := uuid.New()
	ownerID := uuid.New()
	now := time.Now()

	rows := &fakeRows{data: [][]any{
		{venueID, ownerID, "Le Trabendo", "211 avenue Jean Jaurès", "Paris", "75019",
			"France", entity.VenueTypeConcertHall, nil, nil, nil, nil,
			[]string(nil), now, now},
	}}

	genres := &recordingGenreRepo{genres: testGenres()}
	repo := NewVenueRepository(&fakeDB{rows: rows}, genres, zap.NewNop())

	venues, err := repo.FindByOwner(t.Context(), ownerID)
	if err != nil {
		t.Fatalf("FindByOwner: %v", err)
	}
	if len(venues) != 1 {
		t.Fatalf("expected 1 venue, got %d", len(venues))
	}
	if len(genres.venueIDs) != 1 || genres.venueIDs[0] != venueID {
		t.Fatalf("expected one genre lookup for venue %s, got %v", venueID, genres.venueIDs)
	}
	if len(venues[0].Genres) != 2 || venues[0].Genres[0].Name != "Jazz" {
		t.Fatalf("genres not attached to venue: %+v", venues[0].Genres)
	}
}

func TestArtistFindByUserLoadsGenresThroughGenreRepository(t *testing.T) {
	artistID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	rows := &fakeRows{data: [][]any{
		{artistID, userID, "Soprano", nil, nil, nil, nil, nil, now, now},
	}}

	genres := &recordingGenreRepo{genres: testGenres()}
	repo := NewArtistRepository(&fakeDB{rows: rows}, genres, zap.NewNop())

	artists, err := repo.FindByUser(t.Context(), userID)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(artists) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(artists))
	}
	if len(genres.artistIDs) != 1 || genres.artistIDs[0] != artistID {
		t.Fatalf("expected one genre lookup for artist %s, got %v", artistID, genres.artistIDs)
	}
	if len(artists[0].Genres) != 2 {
		t.Fatalf("genres not attached to artist: %+v", artists[0].Genres)
	}
}

func TestSessionFindValidSessionRejectsMalformedTokenWithoutQuerying(t *testing.T) {
	db := &fakeDB{}
	repo := NewSessionRepository(db, zap.NewNop())

	session, err := repo.FindValidSession(t.Context(), "not-a-uuid")
	if err != nil {
		t.Fatalf("expected nil error for malformed token, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session for malformed token, got %+v", session)
	}
	if db.calls != 0 {
		t.Fatalf("malformed token should not reach the database, saw %d calls", db.calls)
	}
}

func TestSessionDeleteRejectsMalformedToken(t *testing.T) {
	db := &fakeDB{}
	repo := NewSessionRepository(db, zap.NewNop())

	err := repo.Delete(t.Context(), "definitely-not-a-uuid")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if db.calls != 0 {
		t.Fatalf("malformed token should not reach the database, saw %d calls", db.calls)
	}
}
