package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/api/metrics"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register creates the account and its profile.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error creating user: invalid payload"})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		SignUpCode: req.SignUpCode,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		h.log.Warn().Err(err).Str("email", req.Email).Msg("registration failed")
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error creating user: " + err.Error()})
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User created successfully: " + user.UID})
}

// Login looks the user up by email. A supplied password is verified and
// answered with an ID token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error finding user: invalid payload"})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error finding user: " + err.Error()})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "User found: " + res.User.UID,
		User: userResponse{
			UID:      res.User.UID,
			Email:    res.User.Email,
			Disabled: res.User.Disabled,
		},
		Token: res.Token,
	})
}

// Logout revokes every token issued to the caller so far.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context, id Identity) error {
	if err := h.authService.Logout(c.Request().Context(), id.UID); err != nil {
		h.log.Error().Err(err).Str("uid", id.UID).Msg("logout failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error logging out: " + err.Error()})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// UserRole returns the role stored on a user's profile.
//
// @Summary      Get user role
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  roleResponse
// @Failure      500     {object}  errorResponse
// @Router       /userRole/{userId} [get]
func (h *AuthHandler) UserRole(c echo.Context) error {
	profile, err := h.authService.Profile(c.Request().Context(), c.Param("userId"))
	if err != nil {
		h.log.Error().Err(err).Str("uid", c.Param("userId")).Msg("fetch user role failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching user role: " + err.Error()})
	}
	return c.JSON(http.StatusOK, roleResponse{Role: profile.Role})
}

// UserData returns a user's profile.
//
// @Summary      Get user profile
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  domain.Profile
// @Failure      500     {object}  errorResponse
// @Router       /userData/{userId} [get]
func (h *AuthHandler) UserData(c echo.Context) error {
	profile, err := h.authService.Profile(c.Request().Context(), c.Param("userId"))
	if err != nil {
		h.log.Error().Err(err).Str("uid", c.Param("userId")).Msg("fetch user data failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching user data: " + err.Error()})
	}
	return c.JSON(http.StatusOK, profile)
}
