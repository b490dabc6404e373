package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskmaster/taskboard/internal/render"
	"github.com/taskmaster/taskboard/internal/services"
	"github.com/taskmaster/taskboard/internal/session"
)

// AuthHandler handles registration, login, logout and the profile page.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions *session.Manager
	render   *render.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions *session.Manager, renderer *render.Renderer) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, render: renderer}
}

// RegisterForm shows the registration form.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "register.html", nil)
}

// Register creates a new account and logs the user straight in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := services.NormalizeUsername(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		h.render.Render(w, r, "register.html", nil, "Username and password are required")
		return
	}

	user, err := h.users.CreateUser(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			h.render.Render(w, r, "register.html", nil, "Username already exists")
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to register user")
		h.render.Render(w, r, "register.html", nil, "Something went wrong, please try again")
		return
	}

	if err := h.sessions.Establish(w, user.Username); err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to establish session")
		session.SetFlash(w, "Something went wrong, please log in")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.SetFlash(w, "Registration successful")
	http.Redirect(w, r, "/profile/"+user.Username, http.StatusSeeOther)
}

// LoginForm shows the login form.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "login.html", nil)
}

// Login authenticates a user. Unknown usernames and wrong passwords produce
// the same message so the form does not leak which usernames exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := services.NormalizeUsername(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.users.AuthenticateUser(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Error().Err(err).Str("username", username).Msg("Authentication lookup failed")
		} else {
			log.Warn().Str("username", username).Msg("Failed authentication attempt")
		}
		session.SetFlash(w, "Username and/or Password incorrect, please try again")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Establish(w, user.Username); err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to establish session")
		session.SetFlash(w, "Something went wrong, please try again")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.SetFlash(w, "Welcome, "+user.Username)
	http.Redirect(w, r, "/profile/"+user.Username, http.StatusSeeOther)
}

// Logout clears the session. Logging out without a session is a no-op, not an
// error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	session.SetFlash(w, "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Profile shows the logged-in user's profile. The username path parameter is
// accepted for URL compatibility but the session identity is authoritative.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username, err := h.sessions.Current(r)
	if err != nil {
		session.SetFlash(w, "Please log in")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), username)
	if err != nil {
		// Session cookie refers to an account that no longer exists.
		log.Warn().Err(err).Str("username", username).Msg("Session user not found")
		h.sessions.Clear(w)
		session.SetFlash(w, "Please log in")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	h.render.Render(w, r, "profile.html", user.Username)
}
