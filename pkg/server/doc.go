// Package server provides the HTTP server for the accessd API.
//
// This package implements the core HTTP server that handles all accessd
// REST API requests. It uses gorilla/mux for routing and provides
// middleware for request handling.
//
// # Server Setup
//
//	srv := server.NewServer(db, host, port)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers all accessd API endpoints including:
//
//   - /permissions - The permission catalog
//   - /roles - Role management and role-permission assignment
//   - /users - User management and user-role assignment
package server
