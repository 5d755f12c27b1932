package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"time"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/internal/validation"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/pkg/mailer"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const confirmationTokenTTL = 24 * time.Hour

// AuthHandler serves registration, login and email confirmation
type AuthHandler struct {
	users    *store.UserStore
	profiles *store.ProfileStore
	mail     *mailer.Mailer
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(users *store.UserStore, profiles *store.ProfileStore, mail *mailer.Mailer) *AuthHandler {
	return &AuthHandler{users: users, profiles: profiles, mail: mail}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new account and sends the confirmation mail
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request"})
	}

	if errs := validation.Struct(&req); len(errs) > 0 {
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": errs.Error(), "errors": errs})
	}

	if _, err := h.users.GetByEmail(req.Email); err == nil {
		log.Warn("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Email already registered"})
	}
	if _, err := h.users.GetByUsername(req.Username); err == nil {
		log.Warn("Username already taken", zap.String("username", req.Username))
		prometheus.RecordAuthError("username_already_exists")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Username already taken"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Registration failed"})
	}

	token, err := confirmationToken()
	if err != nil {
		log.Error("Failed to generate confirmation token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Registration failed"})
	}
	expiry := time.Now().Add(confirmationTokenTTL)

	user := model.User{
		Username:                     req.Username,
		Email:                        req.Email,
		Password:                     string(hashedPassword),
		EmailConfirmationToken:       &token,
		EmailConfirmationTokenExpiry: &expiry,
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.users.Create(&user); err != nil {
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Registration failed"})
	}

	if _, err := h.profiles.Ensure(user.ID, &user.Username); err != nil {
		log.Warn("Failed to create profile", zap.String("user_id", user.ID), zap.Error(err))
	}

	if err := h.mail.SendConfirmation(user.Email, user.Username, token); err != nil {
		// Registration still succeeds; the user can request the mail again
		// through support or confirm later once mail delivery recovers.
		log.Error("Failed to send confirmation email", zap.String("email", user.Email), zap.Error(err))
	}

	log.Info("User registered", zap.String("email", user.Email), zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Registration successful! Please check your email to confirm your account.",
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login verifies credentials and issues a session token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		log.Warn("Login for unknown email", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid email or password"})
	}

	if !user.IsEmailConfirmed {
		log.Warn("Login before email confirmation", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_unconfirmed")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Please confirm your email address before logging in"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Login failed"})
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// ConfirmEmail validates the emailed token and redirects to the client with a
// query flag describing the outcome.
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	log := logger.FromContext(c)

	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Token is required"})
	}

	user, err := h.users.GetByConfirmationToken(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Unknown confirmation token")
			return confirmRedirect(c, false, "Invalid confirmation token")
		}
		log.Error("Failed to look up confirmation token", zap.Error(err))
		return confirmRedirect(c, false, "Email confirmation failed")
	}

	if user.EmailConfirmationTokenExpiry != nil && user.EmailConfirmationTokenExpiry.Before(time.Now()) {
		log.Warn("Expired confirmation token", zap.String("email", user.Email))
		return confirmRedirect(c, false, "Confirmation token has expired")
	}

	updates := map[string]interface{}{
		"is_email_confirmed":              true,
		"email_confirmation_token":        nil,
		"email_confirmation_token_expiry": nil,
	}
	if err := h.users.Update(user.ID, updates); err != nil {
		log.Error("Failed to confirm email", zap.String("email", user.Email), zap.Error(err))
		return confirmRedirect(c, false, "Email confirmation failed")
	}

	log.Info("Email confirmed", zap.String("email", user.Email))
	return confirmRedirect(c, true, "")
}

func confirmRedirect(c echo.Context, ok bool, message string) error {
	if ok {
		return c.Redirect(http.StatusFound, "/?emailConfirmed=true")
	}
	return c.Redirect(http.StatusFound, "/?emailConfirmed=false&error="+url.QueryEscape(message))
}

func confirmationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
