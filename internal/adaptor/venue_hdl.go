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

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log,
	}
}

// MyVenues handles GET /api/venues/mine
func (h *VenueHandler) MyVenues(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	venues, err := h.service.MyVenues(r.Context(), userID)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Liste de vos lieux", venues)
}

// MyVenue handles GET /api/venues/mine/{id}
func (h *VenueHandler) MyVenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identifiant de lieu invalide", nil)
		return
	}

	venue, err := h.service.MyVenue(r.Context(), userID, id)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Détail du lieu", venue)
}

// GetByID handles GET /api/venues/{id}
func (h *VenueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identifiant de lieu invalide", nil)
		return
	}

	venue, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Détail du lieu", venue)
}

// Genres handles GET /api/venues/genres
func (h *VenueHandler) Genres(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Liste des genres musicaux", h.service.AllGenres())
}

// Create handles POST /api/venues
func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	var req request.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	venue, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseCreated(w, "Lieu créé", venue)
}

// Update handles PATCH /api/venues/{id}
func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identifiant de lieu invalide", nil)
		return
	}

	var req request.VenueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corps de requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation échouée", validationErrors)
		return
	}

	venue, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Lieu mis à jour", venue)
}

// Delete handles DELETE /api/venues/{id}
func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentification requise")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identifiant de lieu invalide", nil)
		return
	}

	result, err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		utils.ResponseAppError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Lieu supprimé", result)
}
