package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"rythmons/internal/data/entity"
	"rythmons/internal/data/repository"
	"rythmons/internal/dto/request"
	"rythmons/internal/dto/response"
	"rythmons/internal/oauth"
	"rythmons/pkg/apperr"
	"rythmons/pkg/mailer"
	"rythmons/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

// ClientMeta carries per-request client details into session rows.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest, meta ClientMeta) (*response.AuthResponse, error)
	SignIn(ctx context.Context, req *request.SignInRequest, meta ClientMeta) (*response.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*response.AuthResponse, error)
	PrivateData(ctx context.Context, userID uuid.UUID) (*response.PrivateDataResponse, error)
	ForgetPassword(ctx context.Context, req *request.ForgetPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	GoogleAuthURL(ctx context.Context, client string) (string, error)
	GoogleCallback(ctx context.Context, state, code string, meta ClientMeta) (string, *entity.Session, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Sender
	google oauth.Provider
	states oauth.StateStore
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Sender,
	google oauth.Provider,
	states oauth.StateStore,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		google: google,
		states: states,
		log:    log,
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest, meta ClientMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Sign-up validation failed", zap.Any("errors", errs))
		return nil, apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer le compte", err)
	}
	if existing != nil {
		// Same generic message as any other sign-up failure, no enumeration
		s.log.Warn("Sign-up for already registered email", zap.String("email", req.Email))
		return nil, apperr.New(apperr.CodeConflict, "Impossible de créer le compte")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer le compte", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		Email:         req.Email,
		EmailVerified: false,
	}
	if req.Role != nil {
		role := entity.UserRole(*req.Role)
		user.Role = &role
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.CodeConflict, "Impossible de créer le compte")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer le compte", err)
	}

	account := &entity.Account{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       user.ID,
		ProviderID:   entity.ProviderCredential,
		AccountID:    user.ID.String(),
		PasswordHash: &hash,
	}
	if err := s.repo.Account.Create(ctx, account); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer le compte", err)
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer la session", err)
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return response.NewAuthResponse(user, session), nil
}

func (s *authService) SignIn(ctx context.Context, req *request.SignInRequest, meta ClientMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Sign-in validation failed", zap.Any("errors", errs))
		return nil, apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	invalid := apperr.New(apperr.CodeUnauthenticated, "Identifiants invalides")

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Connexion impossible", err)
	}
	if user == nil {
		// Same response as a wrong password, no account enumeration
		s.log.Warn("Sign-in for unknown email", zap.String("email", req.Email))
		return nil, invalid
	}

	account, err := s.repo.Account.FindByUserAndProvider(ctx, user.ID, entity.ProviderCredential)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Connexion impossible", err)
	}
	if account == nil || account.PasswordHash == nil {
		s.log.Warn("Sign-in without credential account", zap.String("user_id", user.ID.String()))
		return nil, invalid
	}

	if !utils.CheckPasswordHash(req.Password, *account.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, invalid
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer la session", err)
	}

	s.log.Info("User signed in", zap.String("user_id", user.ID.String()))

	return response.NewAuthResponse(user, session), nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	if err := s.repo.Session.Delete(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.CodeUnauthenticated, "Session invalide")
		}
		return apperr.Wrap(apperr.CodeInternal, "Déconnexion impossible", err)
	}

	s.log.Info("User signed out")
	return nil
}

// GetSession resolves a token to its {session, user} pair, or (nil, nil) when
// there is no active session.
func (s *authService) GetSession(ctx context.Context, token string) (*response.AuthResponse, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Erreur interne du serveur", err)
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil || user == nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Erreur interne du serveur", err)
	}

	return response.NewAuthResponse(user, session), nil
}

func (s *authService) PrivateData(ctx context.Context, userID uuid.UUID) (*response.PrivateDataResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Erreur interne du serveur", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.CodeUnauthenticated, "Session invalide")
	}

	return &response.PrivateDataResponse{
		Message: "Message privé",
		User:    response.NewUserResponse(user),
	}, nil
}

// ForgetPassword always succeeds from the caller's point of view so the
// response cannot reveal whether the email exists.
func (s *authService) ForgetPassword(ctx context.Context, req *request.ForgetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to look up email for reset", zap.Error(err))
		return nil
	}
	if user == nil {
		s.log.Info("Password reset requested for unknown email")
		return nil
	}

	// A new request supersedes any outstanding token for this address
	if err := s.repo.Verification.DeleteByIdentifier(ctx, user.Email); err != nil {
		s.log.Warn("Failed to clear previous reset tokens",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	token := uuid.New().String()
	verification := &entity.Verification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Identifier: user.Email,
		Value:      token,
		ExpiresAt:  time.Now().Add(resetTokenTTL),
	}

	if err := s.repo.Verification.Create(ctx, verification); err != nil {
		s.log.Error("Failed to store reset token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.App.BaseURL, token)
	subject, body := mailer.ResetPasswordEmail(user.Name, resetURL)

	if err := s.mail.Send(user.Email, subject, body); err != nil {
		// Upstream failure stays invisible to the caller
		s.log.Error("Failed to send reset email", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil
	}

	s.log.Info("Password reset email sent", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	invalidToken := apperr.New(apperr.CodeValidation, "Jeton invalide ou expiré")

	verification, err := s.repo.Verification.FindValid(ctx, req.Token)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "Réinitialisation impossible", err)
	}
	if verification == nil {
		return invalidToken
	}

	user, err := s.repo.User.FindByEmail(ctx, verification.Identifier)
	if err != nil || user == nil {
		return invalidToken
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "Réinitialisation impossible", err)
	}

	if err := s.repo.Account.UpdatePassword(ctx, user.ID, hash); err != nil {
		// A user without a credential account (Google sign-up) has no
		// password to reset
		if errors.Is(err, repository.ErrNotFound) {
			return invalidToken
		}
		return apperr.Wrap(apperr.CodeInternal, "Réinitialisation impossible", err)
	}

	// Token is single-use
	if err := s.repo.Verification.Delete(ctx, verification.ID); err != nil {
		s.log.Warn("Failed to delete redeemed reset token",
			zap.Error(err), zap.String("verification_id", verification.ID.String()))
	}

	// All existing sessions die with the old password
	if err := s.repo.Session.DeleteAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke sessions after reset",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.New(apperr.CodeValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Mise à jour impossible", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.CodeUnauthenticated, "Session invalide")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Image != nil {
		user.Image = req.Image
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Mise à jour impossible", err)
	}

	s.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	resp := response.NewUserResponse(user)
	return &resp, nil
}

// GoogleAuthURL starts the social sign-in flow for the given client kind
// (web or native) and returns the provider redirect.
func (s *authService) GoogleAuthURL(ctx context.Context, client string) (string, error) {
	callbackURL := s.config.OAuth.WebCallbackURL
	if client == "native" {
		callbackURL = s.config.OAuth.NativeCallbackURL
	}
	if callbackURL == "" {
		return "", apperr.New(apperr.CodeUpstream, "Connexion Google indisponible")
	}

	state := uuid.New().String()
	ttl := time.Duration(s.config.OAuth.StateTTLMinutes) * time.Minute

	err := s.states.Save(ctx, state, oauth.State{Client: client, CallbackURL: callbackURL}, ttl)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeUpstream, "Connexion Google indisponible", err)
	}

	return s.google.AuthURL(state), nil
}

// GoogleCallback finishes the flow: state check, code exchange, upsert by
// verified email, session issuance. Returns the client redirect target.
func (s *authService) GoogleCallback(ctx context.Context, state, code string, meta ClientMeta) (string, *entity.Session, error) {
	pending, err := s.states.Take(ctx, state)
	if err != nil {
		if errors.Is(err, oauth.ErrStateNotFound) {
			return "", nil, apperr.New(apperr.CodeUnauthenticated, "Connexion Google expirée, veuillez réessayer")
		}
		return "", nil, apperr.Wrap(apperr.CodeUpstream, "Connexion Google indisponible", err)
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.CodeUpstream, "Échec de la connexion Google", err)
	}

	info, err := s.google.FetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.CodeUpstream, "Échec de la connexion Google", err)
	}
	if info.Email == "" || !info.EmailVerified {
		return "", nil, apperr.New(apperr.CodeUnauthenticated, "Adresse e-mail Google non vérifiée")
	}

	user, err := s.upsertGoogleUser(ctx, info)
	if err != nil {
		return "", nil, err
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.CodeInternal, "Impossible de créer la session", err)
	}

	s.log.Info("Google sign-in",
		zap.String("user_id", user.ID.String()),
		zap.String("client", pending.Client))

	return appendToken(pending.CallbackURL, session.Token.String()), session, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) upsertGoogleUser(ctx context.Context, info *oauth.UserInfo) (*entity.User, error) {
	user, err := s.repo.User.FindByEmail(ctx, info.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Échec de la connexion Google", err)
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:          info.Name,
			Email:         info.Email,
			EmailVerified: true,
		}
		if info.Picture != "" {
			user.Image = &info.Picture
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "Échec de la connexion Google", err)
		}
	}

	account, err := s.repo.Account.FindByUserAndProvider(ctx, user.ID, entity.ProviderGoogle)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Échec de la connexion Google", err)
	}
	if account == nil {
		account = &entity.Account{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:     user.ID,
			ProviderID: entity.ProviderGoogle,
			AccountID:  info.Subject,
		}
		if err := s.repo.Account.Create(ctx, account); err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "Échec de la connexion Google", err)
		}
	}

	return user, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, meta ClientMeta) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func appendToken(callbackURL, token string) string {
	sep := "?"
	if strings.Contains(callbackURL, "?") {
		sep = "&"
	}
	return callbackURL + sep + "token=" + url.QueryEscape(token)
}
