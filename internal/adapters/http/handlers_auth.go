package web

import (
	"errors"
	"log/slog"
	"net/http"

	"hotelchain/internal/adapters/http/middleware"
	"hotelchain/internal/application/orchestrators"
	"hotelchain/internal/domain/user"
)

// handleLogin serves /login for every method.
// Any logout query parameter signs out; a POST carrying the "login" field signs in; anything else shows the form.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("logout") {
		s.logout(w, r)
		return
	}

	if r.Method != http.MethodPost {
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			if path, known := user.LandingPath(sess.Role); known {
				http.Redirect(w, r, path, http.StatusSeeOther)
				return
			}
		}
		data := map[string]any{"Email": ""}
		if r.URL.Query().Get("registered") == "1" {
			data["Notice"] = "Registration successful. Please sign in."
		}
		renderTemplate(w, r, http.StatusOK, "login.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if _, marked := r.PostForm["login"]; !marked {
		renderTemplate(w, r, http.StatusOK, "login.html", map[string]any{"Email": ""})
		return
	}

	input := orchestrators.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	deps := orchestrators.LoginDeps{UserStore: s.stores.UserStore}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		status := http.StatusOK
		if errors.Is(err, orchestrators.ErrLoginUnavailable) {
			status = http.StatusServiceUnavailable
		}
		renderTemplate(w, r, status, "login.html", map[string]any{
			"Error": err.Error(),
			"Email": input.Email,
		})
		return
	}

	// A fresh login replaces whatever session the browser carried.
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			slog.Error("auth_event", "event", "session_replace_error", "error", err.Error())
		}
	}

	token, err := middleware.CreateSession(r.Context(), s.sessions, result.UserID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token, s.opts.SecureCookies)
	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

// handleLogout handles POST /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.logout(w, r)
}

// logout destroys the session, clears the cookie and sends the browser to the landing page.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			slog.Error("auth_event", "event", "logout_error", "error", err.Error())
		}
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "user_id", sess.UserID)
	}
	middleware.ClearSessionCookie(w, s.opts.SecureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRegister handles GET (form) and POST (create customer) for /register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, http.StatusOK, "register.html", map[string]any{"Name": "", "Email": ""})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.RegisterCustomerInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	deps := orchestrators.RegisterCustomerDeps{UserStore: s.stores.UserStore}

	if _, err := orchestrators.ExecuteRegisterCustomer(r.Context(), input, deps); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, orchestrators.ErrRegistrationUnavailable) {
			status = http.StatusServiceUnavailable
		}
		renderTemplate(w, r, status, "register.html", map[string]any{
			"Error": err.Error(),
			"Name":  input.Name,
			"Email": input.Email,
		})
		return
	}
	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}
