package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gistapi/gistapi/controllers"
	"gistapi/gistapi/services/gists"
	"gistapi/gistapi/utils/logging"
	"gistapi/gistapi/utils/types"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.ErrorResponse{Status: "error", Message: message})
}

// SearchRoutes registers the search endpoint. Mapping from error kinds to
// HTTP statuses happens here and only here; upstream detail never reaches
// the caller on a 500.
func SearchRoutes(ctrl *controllers.SearchController) chi.Router {
	r := chi.NewRouter()

	r.Post("/search", func(w http.ResponseWriter, req *http.Request) {
		var body types.SearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if body.Username == "" || body.Pattern == "" {
			writeError(w, http.StatusBadRequest, "username and pattern are required")
			return
		}

		resp, err := ctrl.Search(req.Context(), body)
		if err != nil {
			switch {
			case errors.Is(err, controllers.ErrInvalidPattern):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, gists.ErrUserNotFound):
				writeError(w, http.StatusNotFound, fmt.Sprintf("User %s not found", body.Username))
			default:
				logging.ErrorLogger.Error("search failed",
					zap.String("username", body.Username),
					zap.String("trace_id", logging.TraceID(req.Context())),
					zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}
