package endpoints

import (
	"net/http"

	"accessd/pkg/rbac"
	"accessd/pkg/server"
)

// RegisterPermissionsEndpoints registers the permission catalog endpoints
func RegisterPermissionsEndpoints(s *server.Server) {
	service := rbac.NewService(s.DB)

	// GET /permissions - Flat list of every known permission name
	s.Router.HandleFunc("/permissions", handleListPermissions(service)).Methods("GET")

	// GET /permissions/tree - The full permission hierarchy
	s.Router.HandleFunc("/permissions/tree", handlePermissionTree(service)).Methods("GET")
}

func handleListPermissions(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"permissions": service.FlattenPermissions(),
		})
	}
}

func handlePermissionTree(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, service.PermissionTree())
	}
}
