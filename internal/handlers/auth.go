package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"couplesync-backend/internal/config"
	"couplesync-backend/internal/dto"
	"couplesync-backend/internal/middleware"
	"couplesync-backend/internal/store"
	"couplesync-backend/internal/utils"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	users store.UserStore
	jwt   *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users store.UserStore, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwtCfg}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or duplicate email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "email and password are required", "")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "email already in use", "")
			return
		}
		slog.Error("creating user failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password, returns a bearer token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "email and password are required", "")
		return
	}

	// Unknown email and wrong password produce the same response, so the
	// endpoint cannot be used to probe which emails are registered.
	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "invalid email or password", "")
			return
		}
		slog.Error("looking up user failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "invalid email or password", "")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.jwt)
	if err != nil {
		slog.Error("generating token failed", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		Message: "login successful",
		Token:   token,
		User:    dto.UserResponse{ID: user.ID, Email: user.Email},
	})
}
