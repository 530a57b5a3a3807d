package adaptor

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"rythmons/internal/dto/request"
	"rythmons/internal/usecase"
	"rythmons/pkg/middleware"
	"rythmons/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		log:     log,
	}
}

// SignUp handles POST /api/auth/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	resp, err := h.service.SignUp(r.Context(), &req, clientMeta(r))
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	h.setSessionCookie(w, resp.Session.Token, resp.Session.ExpiresAt)
	utils.ResponseCreated(w, "Inscription réussie", resp)
}

// SignIn handles POST /api/auth/sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	resp, err := h.service.SignIn(r.Context(), &req, clientMeta(r))
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	h.setSessionCookie(w, resp.Session.Token, resp.Session.ExpiresAt)
	utils.ResponseSuccess(w, "Connexion réussie", resp)
}

// SignOut handles POST /api/auth/sign-out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	h.clearSessionCookie(w)
	utils.ResponseSuccess(w, "Déconnexion réussie", nil)
}

// Session handles GET /api/auth/session. Returns a null payload when no
// valid session accompanies the request.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r, h.config.Session.CookieName)

	resp, err := h.service.GetSession(r.Context(), token)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	if resp == nil {
		utils.ResponseSuccess(w, "Aucune session active", nil)
		return
	}

	utils.ResponseSuccess(w, "Session active", resp)
}

// PrivateData handles GET /api/private-data
func (h *AuthHandler) PrivateData(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	resp, err := h.service.PrivateData(r.Context(), userID)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// ForgetPassword handles POST /api/auth/forget-password. The response is
// identical whether or not the email exists.
func (h *AuthHandler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	if err := h.service.ForgetPassword(r.Context(), &req); err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Si un compte existe pour cette adresse, un e-mail a été envoyé", nil)
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Mot de passe réinitialisé", nil)
}

// UpdateProfile handles PATCH /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Profil mis à jour", resp)
}

// GoogleLogin handles GET /api/auth/google/login?client=web|native
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	client := r.URL.Query().Get("client")
	if client != "native" {
		client = "web"
	}

	authURL, err := h.service.GoogleAuthURL(r.Context(), client)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// GoogleCallback handles GET /api/auth/google/callback
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		utils.ResponseBadRequest(w, "Paramètres de rappel manquants", nil)
		return
	}

	redirect, session, err := h.service.GoogleCallback(r.Context(), state, code, clientMeta(r))
	if err != nil {
		h.log.Warn("Google callback failed", zap.Error(err))
		utils.ResponseAppError(w, err)
		return
	}

	h.setSessionCookie(w, session.Token.String(), session.ExpiresAt)
	http.Redirect(w, r, redirect, http.StatusFound)
}

// ==================== HELPER METHODS ====================

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.App.IsProduction(),
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.App.IsProduction(),
	})
}

func clientMeta(r *http.Request) usecase.ClientMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return usecase.ClientMeta{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}
