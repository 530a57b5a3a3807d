package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rythmons/internal/data/entity"
	"rythmons/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testCookieName = "rythmons_session"

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func newFakeSessionRepo(sessions ...*entity.Session) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
	for _, s := range sessions {
		repo.sessions[s.Token.String()] = s
	}
	return repo
}

func liveSession(userID uuid.UUID) *entity.Session {
	return &entity.Session{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func authEcho(t *testing.T, wantUserID uuid.UUID, wantToken string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok || userID != wantUserID {
			t.Errorf("user id in context = %v (ok=%v), want %v", userID, ok, wantUserID)
		}
		token, ok := utils.GetTokenFromContext(r.Context())
		if !ok || token != wantToken {
			t.Errorf("token in context = %q (ok=%v), want %q", token, ok, wantToken)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthSessionFromCookie(t *testing.T) {
	userID := uuid.New()
	session := liveSession(userID)
	repo := newFakeSessionRepo(session)

	handler := AuthSession(repo, testCookieName, zap.NewNop())(authEcho(t, userID, session.Token.String()))

	req := httptest.NewRequest(http.MethodGet, "/api/private-data", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: session.Token.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuthSessionFromBearerHeader(t *testing.T) {
	userID := uuid.New()
	session := liveSession(userID)
	repo := newFakeSessionRepo(session)

	handler := AuthSession(repo, testCookieName, zap.NewNop())(authEcho(t, userID, session.Token.String()))

	req := httptest.NewRequest(http.MethodGet, "/api/private-data", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuthSessionCookieWinsOverHeader(t *testing.T) {
	userID := uuid.New()
	session := liveSession(userID)
	repo := newFakeSessionRepo(session)

	handler := AuthSession(repo, testCookieName, zap.NewNop())(authEcho(t, userID, session.Token.String()))

	req := httptest.NewRequest(http.MethodGet, "/api/private-data", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: session.Token.String()})
	req.Header.Set("Authorization", "Bearer some-other-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuthSessionRejectsMissingToken(t *testing.T) {
	repo := newFakeSessionRepo()
	called := false
	handler := AuthSession(repo, testCookieName, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/private-data", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("next handler reached without a token")
	}
}

func TestAuthSessionRejectsGarbageToken(t *testing.T) {
	repo := newFakeSessionRepo(liveSession(uuid.New()))

	handler := AuthSession(repo, testCookieName, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached with a garbage token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/private-data", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "not-a-valid-token"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthSessionRejectsExpiredSession(t *testing.T) {
	session := liveSession(uuid.New())
	session.ExpiresAt = time.Now().Add(-time.Minute)
	repo := newFakeSessionRepo(session)

	handler := AuthSession(repo, testCookieName, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler reached with an expired session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/private-data", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: session.Token.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
