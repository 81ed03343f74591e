package endpoints

import (
	"net/http"

	"accessd/pkg/rbac"
	"accessd/pkg/server"
)

// ReplaceRolesRequest is the payload for PUT /users/{id}/roles. An empty
// list clears the user's role set.
type ReplaceRolesRequest struct {
	RoleIDs []int64 `json:"role_ids" validate:"dive,min=1"`
}

// RegisterUserRolesEndpoints registers the user-role assignment endpoints
func RegisterUserRolesEndpoints(s *server.Server) {
	service := rbac.NewService(s.DB)

	// GET /users/{id}/roles - The user's current role set
	s.Router.HandleFunc("/users/{id}/roles", handleUserRoles(service)).Methods("GET")

	// PUT /users/{id}/roles - Replace the user's role set
	s.Router.HandleFunc("/users/{id}/roles", handleReplaceUserRoles(service)).Methods("PUT")
}

func handleUserRoles(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		roleIDs, err := service.UserRoles(userID)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":  userID,
			"role_ids": roleIDs,
		})
	}
}

func handleReplaceUserRoles(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var payload ReplaceRolesRequest
		if !decodeAndValidate(w, r, &payload) {
			return
		}

		applied, err := service.WithClientIP(clientIP(r)).ReplaceUserRoles(userID, payload.RoleIDs)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":  userID,
			"role_ids": applied,
		})
	}
}
