package web

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotelchain/internal/adapters/http/middleware"
	bookingStore "hotelchain/internal/adapters/storage/booking"
	roomStore "hotelchain/internal/adapters/storage/room"
	userStore "hotelchain/internal/adapters/storage/user"
	"hotelchain/internal/domain/user"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore    userStore.Store
	RoomStore    roomStore.Store
	BookingStore bookingStore.Store
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options carries the HTTP-layer settings.
type Options struct {
	CSRFKey        []byte
	SecureCookies  bool
	TrustedOrigins []string
	SlowRequest    time.Duration
	DB             Pinger // optional: nil makes /healthz report ok without a probe
}

// Server owns the handlers and their dependencies.
type Server struct {
	stores   *Stores
	sessions middleware.SessionStore
	opts     Options
}

// NewServer creates a Server.
func NewServer(stores *Stores, sessions middleware.SessionStore, opts Options) *Server {
	return &Server{stores: stores, sessions: sessions, opts: opts}
}

// Handler returns the full middleware stack around the routes.
// Order, outer to inner: SecurityHeaders -> CSRF -> Auth -> Timing -> Mux.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.routes(),
		middleware.Timing(s.opts.SlowRequest),
		middleware.Auth(s.sessions),
		middleware.CSRF(s.opts.CSRFKey, s.opts.SecureCookies, s.opts.TrustedOrigins),
		middleware.SecurityHeaders,
	)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	staticFS, _ := fs.Sub(assets, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /register", s.handleRegister)
	mux.HandleFunc("POST /register", s.handleRegister)

	mux.Handle("GET /admin", middleware.RequireRole(user.RoleSuperAdmin)(s.dashboard("dashboard_admin.html")))
	mux.Handle("GET /manager", middleware.RequireRole(user.RoleManager)(s.dashboard("dashboard_manager.html")))
	mux.Handle("GET /customer", middleware.RequireRole(user.RoleCustomer)(s.dashboard("dashboard_guest.html")))
	mux.Handle("GET /travel_company", middleware.RequireRole(user.RoleTravelCompany)(s.dashboard("dashboard_guest.html")))
	mux.Handle("GET /clerk", middleware.RequireRole(user.RoleClerk)(s.dashboard("dashboard_clerk.html")))

	mux.Handle("GET /availability", middleware.RequireAuth(http.HandlerFunc(s.handleAvailabilityPage)))
	mux.Handle("GET /api/rooms/{id}/availability", middleware.RequireAuth(http.HandlerFunc(s.handleAvailabilityAPI)))

	return mux
}
