package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dom/meucoracao/internal/api/middleware"
	"github.com/dom/meucoracao/internal/api/respond"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/service"
	"golang.org/x/oauth2"
)

type AuthHandler struct {
	authService *service.AuthService
	errs        ErrorWriter
}

func NewAuthHandler(authService *service.AuthService, errs ErrorWriter) *AuthHandler {
	return &AuthHandler{authService: authService, errs: errs}
}

type AuthResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.errs.Write(w, r, "register", err)
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		h.errs.Write(w, r, "register", err)
		return
	}

	respond.JSON(w, http.StatusCreated, AuthResponse{
		Token: result.Token,
		User:  result.User.Public(),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.errs.Write(w, r, "login", err)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		h.errs.Write(w, r, "login", err)
		return
	}

	respond.JSON(w, http.StatusOK, AuthResponse{
		Token: result.Token,
		User:  result.User.Public(),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		h.errs.Write(w, r, "me", err)
		return
	}

	respond.JSON(w, http.StatusOK, user.Public())
}

const (
	oauthStateCookie    = "oauth_state"
	oauthVerifierCookie = "oauth_verifier"
	oauthCookiePath     = "/auth/google"
	oauthCookieMaxAge   = 600
)

// GoogleAuthHandler serves the Google sign-in redirect and callback. On
// success the browser is sent to successRedirect with the session token in
// the "token" query parameter.
type GoogleAuthHandler struct {
	authService     *service.AuthService
	provider        service.GoogleProvider
	successRedirect string
	errs            ErrorWriter
}

func NewGoogleAuthHandler(authService *service.AuthService, provider service.GoogleProvider, successRedirect string, errs ErrorWriter) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		authService:     authService,
		provider:        provider,
		successRedirect: successRedirect,
		errs:            errs,
	}
}

func (h *GoogleAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()

	setOAuthCookie(w, r, oauthStateCookie, state, oauthCookieMaxAge)
	setOAuthCookie(w, r, oauthVerifierCookie, verifier, oauthCookieMaxAge)

	http.Redirect(w, r, h.provider.AuthCodeURL(state, verifier), http.StatusFound)
}

func (h *GoogleAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, stateErr := r.Cookie(oauthStateCookie)
	verifierCookie, verifierErr := r.Cookie(oauthVerifierCookie)
	setOAuthCookie(w, r, oauthStateCookie, "", -1)
	setOAuthCookie(w, r, oauthVerifierCookie, "", -1)

	query := r.URL.Query()
	if stateErr != nil || verifierErr != nil {
		h.errs.Write(w, r, "google.callback", fmt.Errorf("%w: missing state cookie", service.ErrGoogleAuth))
		return
	}
	state := query.Get("state")
	if state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(stateCookie.Value)) != 1 {
		h.errs.Write(w, r, "google.callback", fmt.Errorf("%w: state mismatch", service.ErrGoogleAuth))
		return
	}
	if reason := query.Get("error"); reason != "" {
		h.errs.Write(w, r, "google.callback", fmt.Errorf("%w: %s", service.ErrGoogleAuth, reason))
		return
	}
	code := query.Get("code")
	if code == "" {
		h.errs.Write(w, r, "google.callback", fmt.Errorf("%w: missing code", service.ErrGoogleAuth))
		return
	}

	profile, err := h.provider.Exchange(r.Context(), code, verifierCookie.Value)
	if err != nil {
		h.errs.Write(w, r, "google.callback", err)
		return
	}

	result, err := h.authService.LoginWithGoogle(r.Context(), profile)
	if err != nil {
		h.errs.Write(w, r, "google.callback", err)
		return
	}

	target, err := url.Parse(h.successRedirect)
	if err != nil {
		h.errs.Write(w, r, "google.callback", fmt.Errorf("parse success redirect: %w", err))
		return
	}
	params := target.Query()
	params.Set("token", result.Token)
	target.RawQuery = params.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

func setOAuthCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     oauthCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
