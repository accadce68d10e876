package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hotelchain/internal/adapters/http/middleware"
	"hotelchain/internal/application/projections"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "index.html", map[string]any{})
}

// handleHealth reports 200 when the database answers a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.DB != nil {
		if err := s.opts.DB.Ping(r.Context()); err != nil {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// dashboard renders templateName with the caller's dashboard projection.
// PRE: wrapped in RequireRole, so a session is present
func (s *Server) dashboard(templateName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSessionFromContext(r.Context())

		query := projections.GetDashboardQuery{Role: sess.Role, UserID: sess.UserID}
		deps := projections.GetDashboardDeps{
			UserStore: s.stores.UserStore,
			RoomStore: s.stores.RoomStore,
		}
		result, err := projections.QueryGetDashboard(r.Context(), query, deps)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, http.StatusOK, templateName, map[string]any{
			"Dashboard": result,
			"RoomID":    "",
			"CheckIn":   "",
			"CheckOut":  "",
		})
	}
}

func availabilityQuery(r *http.Request, roomID string) (projections.AvailabilityQuery, error) {
	id, err := strconv.ParseInt(roomID, 10, 64)
	if err != nil {
		return projections.AvailabilityQuery{}, errors.New("room id must be a number")
	}
	return projections.AvailabilityQuery{
		RoomID:   id,
		CheckIn:  r.URL.Query().Get("check_in"),
		CheckOut: r.URL.Query().Get("check_out"),
	}, nil
}

// handleAvailabilityPage renders the availability form and, when submitted, its answer.
func (s *Server) handleAvailabilityPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := map[string]any{
		"RoomID":   q.Get("room_id"),
		"CheckIn":  q.Get("check_in"),
		"CheckOut": q.Get("check_out"),
	}
	if q.Get("room_id") == "" && q.Get("check_in") == "" && q.Get("check_out") == "" {
		renderTemplate(w, r, http.StatusOK, "availability.html", data)
		return
	}

	query, err := availabilityQuery(r, q.Get("room_id"))
	if err == nil {
		var result projections.AvailabilityResult
		result, err = projections.QueryRoomAvailability(r.Context(), query, projections.AvailabilityDeps{BookingStore: s.stores.BookingStore})
		if errors.Is(err, projections.ErrAvailabilityUnavailable) {
			internalError(w, err)
			return
		}
		if err == nil {
			data["Result"] = result
		}
	}
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadRequest
		data["Error"] = err.Error()
	}
	renderTemplate(w, r, status, "availability.html", data)
}

// handleAvailabilityAPI handles GET /api/rooms/{id}/availability?check_in=&check_out=
func (s *Server) handleAvailabilityAPI(w http.ResponseWriter, r *http.Request) {
	query, err := availabilityQuery(r, r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := projections.QueryRoomAvailability(r.Context(), query, projections.AvailabilityDeps{BookingStore: s.stores.BookingStore})
	if errors.Is(err, projections.ErrAvailabilityUnavailable) {
		internalError(w, err)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
