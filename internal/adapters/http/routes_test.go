package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hotelchain/internal/adapters/http/middleware"
	"hotelchain/internal/adapters/storage"
	bookingStore "hotelchain/internal/adapters/storage/booking"
	roomStore "hotelchain/internal/adapters/storage/room"
	userStore "hotelchain/internal/adapters/storage/user"
	"hotelchain/internal/application/orchestrators"
	"hotelchain/internal/application/projections"
)

const (
	testAdminEmail    = "admin@hotel.test"
	testAdminPassword = "admin-pass"
)

type testApp struct {
	server   *Server
	sessions *middleware.MemoryStore
	handler  http.Handler
}

// newTestApp wires a Server over a migrated, demo-seeded in-memory database.
// The CSRF layer is left out so forms can be posted directly.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, storage.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	timed := storage.NewTimedDB(db, storage.DriverSQLite, 0)

	stores := &Stores{
		UserStore:    userStore.NewSQLStore(timed),
		RoomStore:    roomStore.NewSQLStore(timed),
		BookingStore: bookingStore.NewSQLStore(timed),
	}
	seedDeps := orchestrators.SeedDeps{
		UserStore:    stores.UserStore,
		RoomStore:    stores.RoomStore,
		BookingStore: stores.BookingStore,
	}
	if err := orchestrators.ExecuteSeedAdmin(ctx, seedDeps, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := orchestrators.ExecuteSeedDemo(ctx, seedDeps); err != nil {
		t.Fatalf("seed demo: %v", err)
	}

	sessions := middleware.NewMemoryStore()
	s := NewServer(stores, sessions, Options{DB: timed})
	return &testApp{
		server:   s,
		sessions: sessions,
		handler:  middleware.Chain(s.routes(), middleware.Timing(0), middleware.Auth(sessions)),
	}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func loginForm(email, password string) url.Values {
	return url.Values{"login": {"1"}, "email": {email}, "password": {password}}
}

// login signs in and returns the session cookie.
func (a *testApp) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rr := a.do(t, postForm("/login", loginForm(email, password)))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login %s: status=%d body=%s", email, rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("login %s: no session cookie", email)
	return nil
}

func get(target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// TestLogin_RedirectsByRole verifies each demo role lands on its own dashboard.
func TestLogin_RedirectsByRole(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		email, password, want string
	}{
		{testAdminEmail, testAdminPassword, "/admin"},
		{"manager@hotel.test", orchestrators.DemoPassword, "/manager"},
		{"customer@hotel.test", orchestrators.DemoPassword, "/customer"},
		{"agency@hotel.test", orchestrators.DemoPassword, "/travel_company"},
		{"clerk@hotel.test", orchestrators.DemoPassword, "/clerk"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			rr := app.do(t, postForm("/login", loginForm(tt.email, tt.password)))
			if rr.Code != http.StatusSeeOther {
				t.Fatalf("status=%d want 303", rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != tt.want {
				t.Errorf("location=%q want %q", loc, tt.want)
			}
		})
	}
}

// TestLogin_Failures verifies failed logins re-render the form without a session.
func TestLogin_Failures(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{"wrong password", loginForm("manager@hotel.test", "nope-nope"), "Invalid email or password."},
		{"unknown email", loginForm("ghost@hotel.test", "whatever"), "Invalid email or password."},
		{"bad email", loginForm("not-an-email", "whatever"), "Invalid email format."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.do(t, postForm("/login", tt.form))
			if rr.Code != http.StatusOK {
				t.Fatalf("status=%d want 200", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.wantMsg) {
				t.Errorf("body does not contain %q", tt.wantMsg)
			}
			if len(rr.Result().Cookies()) != 0 {
				t.Error("failed login set a cookie")
			}
		})
	}
}

// TestLogin_WithoutMarkerShowsForm verifies a POST lacking the login field is not processed.
func TestLogin_WithoutMarkerShowsForm(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"email": {"manager@hotel.test"}, "password": {orchestrators.DemoPassword}}
	rr := app.do(t, postForm("/login", form))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rr.Code)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("unmarked POST created a session")
	}
}

func TestLogin_GetWhenSignedInRedirects(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "manager@hotel.test", orchestrators.DemoPassword)

	rr := app.do(t, get("/login", cookie))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/manager" {
		t.Errorf("status=%d location=%q", rr.Code, rr.Header().Get("Location"))
	}
}

// TestDashboards_Gating covers anonymous, wrong-role and matching-role access.
func TestDashboards_Gating(t *testing.T) {
	app := newTestApp(t)
	customer := app.login(t, "customer@hotel.test", orchestrators.DemoPassword)

	rr := app.do(t, get("/manager", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Errorf("anonymous: status=%d location=%q", rr.Code, rr.Header().Get("Location"))
	}

	rr = app.do(t, get("/admin", customer))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Errorf("wrong role: status=%d location=%q", rr.Code, rr.Header().Get("Location"))
	}

	rr = app.do(t, get("/customer", customer))
	if rr.Code != http.StatusOK {
		t.Fatalf("own dashboard: status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Check room availability") {
		t.Error("customer dashboard missing availability form")
	}
}

func TestDashboard_ManagerShowsOccupancy(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "manager@hotel.test", orchestrators.DemoPassword)

	rr := app.do(t, get("/manager", cookie))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "50.00%") {
		t.Errorf("manager dashboard missing branch 1 occupancy: %s", body)
	}
	if !strings.Contains(body, "101") || strings.Contains(body, "201") {
		t.Error("manager dashboard should list only branch 1 rooms")
	}
}

func TestDashboard_AdminShowsEveryBranch(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	rr := app.do(t, get("/admin", cookie))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "50.00%") || !strings.Contains(body, "33.33%") {
		t.Errorf("admin dashboard missing branch rates: %s", body)
	}
}

// TestLogout verifies both logout routes destroy the session.
func TestLogout(t *testing.T) {
	tests := []struct {
		name string
		req  func(*http.Cookie) *http.Request
	}{
		{"query flag", func(c *http.Cookie) *http.Request { return get("/login?logout=1", c) }},
		{"query without value", func(c *http.Cookie) *http.Request { return get("/login?logout", c) }},
		{"query other value", func(c *http.Cookie) *http.Request { return get("/login?logout=true", c) }},
		{"query on post", func(c *http.Cookie) *http.Request {
			r := postForm("/login?logout", url.Values{})
			r.AddCookie(c)
			return r
		}},
		{"logout route", func(c *http.Cookie) *http.Request {
			r := postForm("/logout", url.Values{})
			r.AddCookie(c)
			return r
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			cookie := app.login(t, "clerk@hotel.test", orchestrators.DemoPassword)

			rr := app.do(t, tt.req(cookie))
			if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
				t.Fatalf("logout: status=%d location=%q", rr.Code, rr.Header().Get("Location"))
			}
			if _, err := app.sessions.Get(context.Background(), cookie.Value); err == nil {
				t.Error("session still present after logout")
			}

			rr = app.do(t, get("/clerk", cookie))
			if rr.Header().Get("Location") != "/login" {
				t.Errorf("old cookie still admitted: location=%q", rr.Header().Get("Location"))
			}
		})
	}
}

// TestLogin_ReplacesPreviousSession verifies signing in again invalidates the old token.
func TestLogin_ReplacesPreviousSession(t *testing.T) {
	app := newTestApp(t)
	first := app.login(t, "clerk@hotel.test", orchestrators.DemoPassword)

	req := postForm("/login", loginForm("manager@hotel.test", orchestrators.DemoPassword))
	req.AddCookie(first)
	rr := app.do(t, req)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/manager" {
		t.Fatalf("second login: status=%d location=%q", rr.Code, rr.Header().Get("Location"))
	}

	if _, err := app.sessions.Get(context.Background(), first.Value); err == nil {
		t.Error("previous session still present after a new login")
	}
	var second *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			second = c
		}
	}
	if second == nil || second.Value == first.Value {
		t.Fatalf("second login did not issue a new token: %+v", second)
	}
	if _, err := app.sessions.Get(context.Background(), second.Value); err != nil {
		t.Errorf("new session missing: %v", err)
	}
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"Nora"}, "email": {"nora@hotel.test"}, "password": {"sunrise"}}
	rr := app.do(t, postForm("/register", form))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login?registered=1" {
		t.Fatalf("status=%d location=%q body=%s", rr.Code, rr.Header().Get("Location"), rr.Body.String())
	}
	app.login(t, "nora@hotel.test", "sunrise")

	rr = app.do(t, postForm("/register", form))
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "Email is already registered.") {
		t.Errorf("duplicate: status=%d", rr.Code)
	}

	short := url.Values{"name": {"Ola"}, "email": {"ola@hotel.test"}, "password": {"123"}}
	rr = app.do(t, postForm("/register", short))
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "at least 6 characters") {
		t.Errorf("short password: status=%d", rr.Code)
	}
}

// TestAvailabilityAPI checks the JSON endpoint against demo room 1 (booked 2024-06-01..2024-06-05).
func TestAvailabilityAPI(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "agency@hotel.test", orchestrators.DemoPassword)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantAvail  bool
	}{
		{"overlap", "/api/rooms/1/availability?check_in=2024-06-03&check_out=2024-06-04", http.StatusOK, false},
		{"touching check-out day", "/api/rooms/1/availability?check_in=2024-06-05&check_out=2024-06-07", http.StatusOK, false},
		{"free", "/api/rooms/1/availability?check_in=2024-06-06&check_out=2024-06-08", http.StatusOK, true},
		{"reversed", "/api/rooms/1/availability?check_in=2024-06-08&check_out=2024-06-06", http.StatusBadRequest, false},
		{"bad id", "/api/rooms/abc/availability?check_in=2024-06-06&check_out=2024-06-08", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.do(t, get(tt.target, cookie))
			if rr.Code != tt.wantStatus {
				t.Fatalf("status=%d want %d body=%s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var res projections.AvailabilityResult
			if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res.Available != tt.wantAvail {
				t.Errorf("available=%v want %v", res.Available, tt.wantAvail)
			}
		})
	}

	rr := app.do(t, get("/api/rooms/1/availability?check_in=2024-06-06&check_out=2024-06-08", nil))
	if rr.Code != http.StatusSeeOther {
		t.Errorf("anonymous API call: status=%d want 303", rr.Code)
	}
}

func TestAvailabilityPage(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "clerk@hotel.test", orchestrators.DemoPassword)

	rr := app.do(t, get("/availability?room_id=1&check_in=2024-06-01&check_out=2024-06-02", cookie))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "is not available") {
		t.Errorf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = app.do(t, get("/availability?room_id=1&check_in=2024-06-01", cookie))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing check-out: status=%d want 400", rr.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, get("/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Errorf("healthz: status=%d body=%q", rr.Code, rr.Body.String())
	}

	app.login(t, "customer@hotel.test", orchestrators.DemoPassword)
	rr = app.do(t, get("/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "hotel_login_attempts_total") {
		t.Errorf("metrics: status=%d", rr.Code)
	}
}

// TestHandler_RejectsPostWithoutCSRFToken verifies the full stack guards every POST,
// whatever content type the request claims.
func TestHandler_RejectsPostWithoutCSRFToken(t *testing.T) {
	app := newTestApp(t)
	app.server.opts.CSRFKey = []byte(strings.Repeat("k", 32))
	app.server.opts.TrustedOrigins = []string{"example.com"}
	cookie := app.login(t, "clerk@hotel.test", orchestrators.DemoPassword)

	jsonLogout := httptest.NewRequest("POST", "/logout", strings.NewReader("{}"))
	jsonLogout.Header.Set("Content-Type", "application/json")
	jsonLogout.AddCookie(cookie)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"login form", postForm("/login", loginForm("manager@hotel.test", orchestrators.DemoPassword))},
		{"json logout", jsonLogout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.server.Handler().ServeHTTP(rr, tt.req)
			if rr.Code != http.StatusForbidden {
				t.Errorf("status=%d want 403", rr.Code)
			}
			if rr.Header().Get("X-Frame-Options") != "DENY" {
				t.Error("security headers missing")
			}
		})
	}
	if _, err := app.sessions.Get(context.Background(), cookie.Value); err != nil {
		t.Errorf("session destroyed by a rejected request: %v", err)
	}
}
