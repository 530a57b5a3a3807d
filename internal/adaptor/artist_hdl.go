package adaptor

import (
	"encoding/json"
	"net/http"

	"rythmons/internal/dto/request"
	"rythmons/internal/usecase"
	"rythmons/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ArtistHandler struct {
	service usecase.ArtistService
	log     *zap.Logger
}

func NewArtistHandler(service usecase.ArtistService, log *zap.Logger) *ArtistHandler {
	return &ArtistHandler{
		service: service,
		log:     log,
	}
}

// MyArtists handles GET /api/artists/mine
func (h *ArtistHandler) MyArtists(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	artists, err := h.service.MyArtists(r.Context(), userID)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Liste de vos artistes", artists)
}

// Create handles POST /api/artists
func (h *ArtistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	var req request.ArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	artist, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseCreated(w, "Profil artiste créé", artist)
}

// Update handles PATCH /api/artists/{id}
func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identifiant d'artiste invalide", nil)
		return
	}

	var req request.ArtistUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	artist, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Profil artiste mis à jour", artist)
}

// Delete handles DELETE /api/artists/{id}
func (h *ArtistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identifiant d'artiste invalide", nil)
		return
	}

	result, err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Profil artiste supprimé", result)
}
