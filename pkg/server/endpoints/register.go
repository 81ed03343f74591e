package endpoints

import (
	"accessd/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterPermissionsEndpoints(srv)
	RegisterRolesEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterUserRolesEndpoints(srv)
}
