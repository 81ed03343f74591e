package endpoints

import (
	"net/http"
	"time"

	"accessd/pkg/rbac"
	"accessd/pkg/server"
	"accessd/pkg/server/store"
)

// UserResponse represents a user in the API response. The password hash
// is never exposed.
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	IsSuperuser bool       `json:"is_superuser"`
	TierID      *int64     `json:"tier_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateUserRequest is the payload for POST /users
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// RegisterUsersEndpoints registers the user lifecycle endpoints
func RegisterUsersEndpoints(s *server.Server) {
	service := rbac.NewService(s.DB)

	usersRouter := s.Router.PathPrefix("/users").Subrouter()

	// GET /users - List live users
	usersRouter.HandleFunc("", handleListUsers(service)).Methods("GET")

	// POST /users - Create a user
	usersRouter.HandleFunc("", handleCreateUser(service)).Methods("POST")

	// GET /users/{id} - Show a user
	usersRouter.HandleFunc("/{id}", handleShowUser(service)).Methods("GET")

	// DELETE /users/{id} - Soft-delete a user and clear its assignments
	usersRouter.HandleFunc("/{id}", handleDeleteUser(service)).Methods("DELETE")
}

func handleListUsers(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := service.ListUsers()

		response := make([]UserResponse, 0, len(users))
		for _, user := range users {
			response = append(response, toUserResponse(user))
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleCreateUser(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CreateUserRequest
		if !decodeAndValidate(w, r, &payload) {
			return
		}

		user, err := service.CreateUser(payload.Username, payload.Email, payload.Password)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, toUserResponse(*user))
	}
}

func handleShowUser(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		user := service.FetchUser(userID)
		if user == nil {
			respondWithError(w, http.StatusNotFound, "user not found")
			return
		}

		respondWithJSON(w, http.StatusOK, toUserResponse(*user))
	}
}

func handleDeleteUser(service *rbac.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := service.DeleteUser(userID); err != nil {
			respondWithServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toUserResponse(user store.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
		TierID:      user.TierID,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
