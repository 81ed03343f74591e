package endpoints

import (
	"net/http"
	"time"

	"accessd/pkg/rbac"
	"accessd/pkg/server"
	"accessd/pkg/server/store"
)

// RoleResponse represents a role in the API response
type RoleResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	Permissions []string   `json:"permissions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateRoleRequest is the payload for POST /roles
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=50"`
	Description string   `json:"description" validate:"max=255"`
	IsActive    *bool    `json:"is_active"`
	Permissions []string `json:"permissions" validate:"dive,min=1,max=100"`
}

// UpdateRoleRequest is the payload for PUT /roles/{id}. Absent fields are
// left untouched; an explicit empty permissions list clears the set.
type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string   `json:"description" validate:"omitempty,max=255"`
	IsActive    *bool     `json:"is_active"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,min=1,max=100"`
}

// ReplacePermissionsRequest is the payload for PUT /roles/{id}/permissions
type ReplacePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"dive,min=1,max=100"`
}

// RegisterRolesEndpoints registers the role lifecycle and role-permission
// assignment endpoints
func RegisterRolesEndpoints(s *server.Server) {
	db := s.DB
	service := rbac.NewService(db)

	rolesRouter := s.Router.PathPrefix("/roles").Subrouter()

	// GET /roles - List roles
	rolesRouter.HandleFunc("", handleListRoles(service)).Methods("GET")

	// POST /roles - Create a role, optionally with an initial permission set
	rolesRouter.HandleFunc("", handleCreateRole(service)).Methods("POST")

	// GET /roles/{id} - Show a role with its permissions
	rolesRouter.HandleFunc("/{id}", handleShowRole(service)).Methods("GET")

	// PUT /roles/{id} - Update a role and optionally replace its permissions
	rolesRouter.HandleFunc("/{id}", handleUpdateRole(service)).Methods("PUT")

	// DELETE /roles/{id} - Delete a role and its assignments
	rolesRouter.HandleFunc("/{id}", handleDeleteRole(service)).Methods("DELETE")

	// GET /roles/{id}/permissions - The role's current permission set
	rolesRouter.HandleFunc("/{id}/permissions", handleRolePermissions(service)).Methods("GET")

	// PUT /roles/{id}/permissions - Replace the role's permission set
	rolesRouter.HandleFunc("/{id}/permissions", handleReplaceRolePermissions(service)).Methods("PUT")
}

func handleListRoles(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles := service.ListRoles()

		response := make([]RoleResponse, 0, len(roles))
		for _, role := range roles {
			response = append(response, toRoleResponse(role, nil))
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleCreateRole(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CreateRoleRequest
		if !decodeAndValidate(w, r, &payload) {
			return
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		role, applied, err := service.CreateRole(payload.Name, payload.Description, isActive, payload.Permissions)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, toRoleResponse(*role, applied))
	}
}

func handleShowRole(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		role := service.FetchRole(roleID)
		if role == nil {
			respondWithError(w, http.StatusNotFound, "role not found")
			return
		}

		names, err := service.RolePermissions(roleID)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, toRoleResponse(*role, names))
	}
}

func handleUpdateRole(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var payload UpdateRoleRequest
		if !decodeAndValidate(w, r, &payload) {
			return
		}

		names, err := service.UpdateRole(roleID, payload.Name, payload.Description, payload.IsActive, payload.Permissions)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		role := service.FetchRole(roleID)
		if role == nil {
			respondWithError(w, http.StatusNotFound, "role not found")
			return
		}

		respondWithJSON(w, http.StatusOK, toRoleResponse(*role, names))
	}
}

func handleDeleteRole(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := service.WithClientIP(clientIP(r)).DeleteRole(roleID); err != nil {
			respondWithServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRolePermissions(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		names, err := service.RolePermissions(roleID)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"role_id":     roleID,
			"permissions": names,
		})
	}
}

func handleReplaceRolePermissions(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var payload ReplacePermissionsRequest
		if !decodeAndValidate(w, r, &payload) {
			return
		}

		applied, err := service.WithClientIP(clientIP(r)).ReplaceRolePermissions(roleID, payload.Permissions)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"role_id":     roleID,
			"permissions": applied,
		})
	}
}

func toRoleResponse(role store.Role, permissionNames []string) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsActive:    role.IsActive,
		Permissions: permissionNames,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}
