package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"rythmons/internal/data/entity"
	"rythmons/internal/data/repository"
	"rythmons/internal/oauth"
	"rythmons/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository stubs. Each keeps rows in maps and mirrors the SQL
// layer's contracts: (nil, nil) on miss, sentinel errors on quota and
// missing rows.

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

type stubAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (s *stubAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	s.accounts[account.ID] = account
	return nil
}

func (s *stubAccountRepo) FindByUserAndProvider(ctx context.Context, userID uuid.UUID, providerID string) (*entity.Account, error) {
	for _, a := range s.accounts {
		if a.UserID == userID && a.ProviderID == providerID {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubAccountRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	for _, a := range s.accounts {
		if a.UserID == userID && a.ProviderID == entity.ProviderCredential {
			a.PasswordHash = &passwordHash
			return nil
		}
	}
	return repository.ErrNotFound
}

type stubSessionRepo struct {
	sessions map[string]*entity.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (s *stubSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	s.sessions[session.Token.String()] = session
	return nil
}

func (s *stubSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	session, ok := s.sessions[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (s *stubSessionRepo) Delete(ctx context.Context, token string) error {
	if _, ok := s.sessions[token]; !ok {
		return repository.ErrNotFound
	}
	delete(s.sessions, token)
	return nil
}

func (s *stubSessionRepo) DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s *stubSessionRepo) DeleteExpired(ctx context.Context) error {
	for token, session := range s.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(s.sessions, token)
		}
	}
	return nil
}

type stubVerificationRepo struct {
	verifications map[uuid.UUID]*entity.Verification
}

func newStubVerificationRepo() *stubVerificationRepo {
	return &stubVerificationRepo{verifications: make(map[uuid.UUID]*entity.Verification)}
}

func (s *stubVerificationRepo) Create(ctx context.Context, verification *entity.Verification) error {
	s.verifications[verification.ID] = verification
	return nil
}

func (s *stubVerificationRepo) FindValid(ctx context.Context, value string) (*entity.Verification, error) {
	for _, v := range s.verifications {
		if v.Value == value && v.ExpiresAt.After(time.Now()) {
			return v, nil
		}
	}
	return nil, nil
}

func (s *stubVerificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.verifications, id)
	return nil
}

func (s *stubVerificationRepo) DeleteByIdentifier(ctx context.Context, identifier string) error {
	for id, v := range s.verifications {
		if v.Identifier == identifier {
			delete(s.verifications, id)
		}
	}
	return nil
}

type stubGenreRepo struct{}

func (s *stubGenreRepo) FindByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.Genre, error) {
	return nil, nil
}

func (s *stubGenreRepo) FindByArtistID(ctx context.Context, artistID uuid.UUID) ([]*entity.Genre, error) {
	return nil, nil
}

type stubVenueRepo struct {
	venues map[uuid.UUID]*entity.Venue
}

func newStubVenueRepo() *stubVenueRepo {
	return &stubVenueRepo{venues: make(map[uuid.UUID]*entity.Venue)}
}

func (s *stubVenueRepo) Create(ctx context.Context, venue *entity.Venue, genreNames []string, maxPerOwner int) error {
	var count int
	for _, v := range s.venues {
		if v.OwnerID == venue.OwnerID {
			count++
		}
	}
	if count >= maxPerOwner {
		return repository.ErrQuotaExceeded
	}
	venue.Genres = genresFromNames(genreNames)
	s.venues[venue.ID] = venue
	return nil
}

func (s *stubVenueRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	return s.venues[id], nil
}

func (s *stubVenueRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Venue, error) {
	var result []*entity.Venue
	for _, v := range s.venues {
		if v.OwnerID == ownerID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (s *stubVenueRepo) Update(ctx context.Context, venue *entity.Venue, genreNames *[]string) error {
	if _, ok := s.venues[venue.ID]; !ok {
		return repository.ErrNotFound
	}
	if genreNames != nil {
		venue.Genres = genresFromNames(*genreNames)
	}
	s.venues[venue.ID] = venue
	return nil
}

func (s *stubVenueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.venues[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.venues, id)
	return nil
}

type stubArtistRepo struct {
	artists map[uuid.UUID]*entity.Artist
}

func newStubArtistRepo() *stubArtistRepo {
	return &stubArtistRepo{artists: make(map[uuid.UUID]*entity.Artist)}
}

func (s *stubArtistRepo) Create(ctx context.Context, artist *entity.Artist, genreNames []string, maxPerUser int) error {
	var count int
	for _, a := range s.artists {
		if a.UserID == artist.UserID {
			count++
		}
	}
	if count >= maxPerUser {
		return repository.ErrQuotaExceeded
	}
	artist.Genres = genresFromNames(genreNames)
	s.artists[artist.ID] = artist
	return nil
}

func (s *stubArtistRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Artist, error) {
	return s.artists[id], nil
}

func (s *stubArtistRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Artist, error) {
	var result []*entity.Artist
	for _, a := range s.artists {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *stubArtistRepo) Update(ctx context.Context, artist *entity.Artist, genreNames *[]string) error {
	if _, ok := s.artists[artist.ID]; !ok {
		return repository.ErrNotFound
	}
	if genreNames != nil {
		artist.Genres = genresFromNames(*genreNames)
	}
	s.artists[artist.ID] = artist
	return nil
}

func (s *stubArtistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.artists[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.artists, id)
	return nil
}

func genresFromNames(names []string) []*entity.Genre {
	genres := make([]*entity.Genre, 0, len(names))
	for _, name := range names {
		genres = append(genres, &entity.Genre{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			Name:       name,
		})
	}
	return genres
}

// Mail and OAuth doubles.

type stubMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (s *stubMailer) Send(to, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

type stubOAuthProvider struct {
	info        *oauth.UserInfo
	exchangeErr error
}

func (s *stubOAuthProvider) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (s *stubOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.TokenResponse, error) {
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return &oauth.TokenResponse{AccessToken: "upstream-token"}, nil
}

func (s *stubOAuthProvider) FetchUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error) {
	if s.info == nil {
		return nil, errors.New("no user info configured")
	}
	return s.info, nil
}

type stubStateStore struct {
	states map[string]oauth.State
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{states: make(map[string]oauth.State)}
}

func (s *stubStateStore) Save(ctx context.Context, key string, state oauth.State, ttl time.Duration) error {
	s.states[key] = state
	return nil
}

func (s *stubStateStore) Take(ctx context.Context, key string) (*oauth.State, error) {
	state, ok := s.states[key]
	if !ok {
		return nil, oauth.ErrStateNotFound
	}
	delete(s.states, key)
	return &state, nil
}

// Wiring helpers shared across the service tests.

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		User:         newStubUserRepo(),
		Account:      newStubAccountRepo(),
		Session:      newStubSessionRepo(),
		Verification: newStubVerificationRepo(),
		Genre:        &stubGenreRepo{},
		Venue:        newStubVenueRepo(),
		Artist:       newStubArtistRepo(),
	}
}

func newTestConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:    "rythmons-test",
			Env:     "test",
			BaseURL: "http://localhost:3000",
		},
		Session: utils.SessionConfig{
			CookieName:  "rythmons_session",
			ExpiryHours: 168,
		},
		OAuth: utils.OAuthConfig{
			WebCallbackURL:    "http://localhost:5173/auth/callback",
			NativeCallbackURL: "mybettertapp://auth/callback",
			StateTTLMinutes:   10,
		},
	}
}

func newTestAuthService(repo *repository.Repository, mail *stubMailer, google *stubOAuthProvider, states *stubStateStore) AuthService {
	return NewAuthService(repo, newTestConfig(), mail, google, states, zap.NewNop())
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("invalid uuid %q: %v", s, err)
	}
	return id
}

// extractResetToken pulls the token query value out of the reset link in a
// mail body.
func extractResetToken(t *testing.T, body string) string {
	t.Helper()
	marker := "reset-password?token="
	idx := strings.Index(body, marker)
	if idx < 0 {
		t.Fatalf("no reset link in mail body")
	}
	rest := body[idx+len(marker):]
	if end := strings.IndexAny(rest, `"'<& `); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func stateFromAuthURL(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("invalid auth url %q: %v", authURL, err)
	}
	state := u.Query().Get("state")
	if state == "" {
		t.Fatalf("auth url %q carries no state", authURL)
	}
	return state
}
