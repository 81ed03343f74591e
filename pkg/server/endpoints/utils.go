package endpoints

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"accessd/pkg/config"
	"accessd/pkg/rbac"
)

var validate = validator.New()

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithServiceError maps service-layer failures onto HTTP statuses:
// missing entities are 404, name collisions are 400, everything else is 500.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case rbac.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, rbac.ErrRoleNameTaken), errors.Is(err, rbac.ErrUserExists):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeAndValidate decodes a JSON request body into payload and runs
// struct validation. A false return means a response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(payload); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			details := make([]string, 0, len(fields))
			for _, f := range fields {
				details = append(details, f.Namespace()+": failed on '"+f.Tag()+"'")
			}
			respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"error": "validation failed", "details": details})
			return false
		}
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// pathID extracts an integer path variable. A false return means a
// response was already written.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, name+" must be an integer")
		return 0, false
	}
	return id, true
}

// clientIP resolves the caller's address, honouring X-Forwarded-For only
// when the direct peer is a configured trusted proxy.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" || !config.Get().IsTrustedProxy(ip) {
		return ip
	}

	parts := strings.Split(forwarded, ",")
	return strings.TrimSpace(parts[0])
}
