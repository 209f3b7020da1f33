package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ideiatech/smartleader-api/internal/config"
	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/service/auth"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	personStore store.PersonStore
	jwtService  auth.JWTService
	hasher      *auth.BcryptHasher
	authConfig  config.AuthConfig
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	personStore store.PersonStore,
	jwtService auth.JWTService,
	hasher *auth.BcryptHasher,
	authConfig config.AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		personStore: personStore,
		jwtService:  jwtService,
		hasher:      hasher,
		authConfig:  authConfig,
		validator:   validator.New(),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	role := domain.RoleContributor
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	person, err := domain.NewPerson(req.Email, req.Username, req.FullName, req.Password, role)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid person data: "+err.Error())
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to register")
		return
	}
	person.HashedPassword = hashed
	person.Password = ""

	if err := h.personStore.Create(r.Context(), person); err != nil {
		if errors.Is(err, store.ErrEmailExists) || errors.Is(err, store.ErrUsernameExists) {
			HandleServiceError(w, r, err)
			return
		}
		slog.Error("failed to create person", "error", err, "email", req.Email)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to register")
		return
	}

	h.respondWithTokenPair(w, r, person, http.StatusCreated)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	person, err := h.personStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to get person by email", "error", err, "email", req.Email)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	if err := h.hasher.Compare(person.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !person.IsActive {
		RespondWithError(w, r, http.StatusForbidden, "Account is inactive")
		return
	}

	now := time.Now().UTC()
	person.LastLogin = &now
	if err := h.personStore.Update(r.Context(), person); err != nil {
		// Login still succeeds; the stamp is best effort.
		slog.Warn("failed to record last login", "error", err, "person_id", person.ID)
	}

	h.respondWithTokenPair(w, r, person, http.StatusOK)
}

// RefreshToken handles the /auth/refresh endpoint. It validates the
// presented refresh token and issues a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	person, err := h.personStore.GetByID(r.Context(), claims.PersonID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if !person.IsActive {
		HandleServiceError(w, r, auth.ErrAccountInactive)
		return
	}

	accessToken, err := h.jwtService.GenerateToken(r.Context(), person.ID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "person_id", person.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh tokens")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), person.ID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "person_id", person.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh tokens")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    h.accessTokenExpiry().Format(time.RFC3339),
	})
}

// respondWithTokenPair issues a fresh token pair for the person.
func (h *AuthHandler) respondWithTokenPair(
	w http.ResponseWriter,
	r *http.Request,
	person *domain.Person,
	status int,
) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), person.ID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "person_id", person.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), person.ID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "person_id", person.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	RespondWithJSON(w, r, status, AuthResponse{
		PersonID:     person.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    h.accessTokenExpiry().Format(time.RFC3339),
	})
}

func (h *AuthHandler) accessTokenExpiry() time.Time {
	return time.Now().UTC().Add(time.Duration(h.authConfig.TokenLifetimeMinutes) * time.Minute)
}
