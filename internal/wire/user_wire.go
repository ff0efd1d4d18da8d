package wire

import (
	"user-directory/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures the user directory routes, one per operation.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)          // getAllUsers
		r.Get("/counts", userHandler.GetUserCounts)  // getUserCounts
		r.Get("/{id}", userHandler.GetUserByID)      // getUserById
		r.Post("/", userHandler.CreateUser)          // createUser
		r.Patch("/{id}", userHandler.UpdateUser)     // updateUser
		r.Delete("/{id}", userHandler.DeleteUser)    // deleteUser
		r.Patch("/{id}/password", userHandler.ResetPassword) // resetPassword
		r.Patch("/{id}/status", userHandler.UpdateStatus)    // updateStatus
	})
}
