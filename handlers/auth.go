package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/padraicbc/keibaapi/middleware"
	"github.com/padraicbc/keibaapi/repository"
)

const tokenLifetime = 30 * 24 * time.Hour

// hashCost is lowered in tests.
var hashCost = bcrypt.DefaultCost

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// bindCredentials reads a JSON credentials body, trimming the username.
func bindCredentials(c echo.Context) (credentials, error) {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return creds, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Username = strings.TrimSpace(creds.Username)
	return creds, c.Validate(&creds)
}

// HashPasswordForUser returns the bcrypt hash stored for a new user.
func HashPasswordForUser(username, password string) (string, error) {
	switch {
	case strings.TrimSpace(username) == "":
		return "", errors.New("username is required")
	case strings.TrimSpace(password) == "":
		return "", errors.New("password is required")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// requireAdmin checks that the token's user still exists and is an admin.
func (h *Handler) requireAdmin(c echo.Context) error {
	name, _ := c.Get(mw.UsernameKey).(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, err := h.store.UserByName(c.Request().Context(), name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !h.opts.IsAdmin(name) {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}
	return nil
}

// PasswordHash lets an admin hash a password for manual user registration.
func (h *Handler) PasswordHash(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	creds, err := bindCredentials(c)
	if err != nil {
		return err
	}
	hash, err := HashPasswordForUser(creds.Username, creds.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"username":      creds.Username,
		"password_hash": hash,
	})
}

// Signin exchanges a username and password for a JWT valid for tokenLifetime.
func (h *Handler) Signin(c echo.Context) error {
	creds, err := bindCredentials(c)
	if err != nil {
		return err
	}

	user, err := h.store.UserByName(c.Request().Context(), creds.Username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "incorrect username or password")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	token, err := mw.Sign(user.Username, h.opts.JWTKey, h.opts.Now().Add(tokenLifetime))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
