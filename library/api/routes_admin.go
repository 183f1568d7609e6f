package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/changeuserrole"
	"github.com/AntonStoeckl/biblioteca/library/features/query/registeredusers"
)

const (
	msgUsersFailed   = "Error al obtener la lista de usuarios"
	msgRoleChanged   = "Rol actualizado exitosamente"
	msgChangeFailed  = "Error al actualizar el rol"
	msgUserCreated   = "Usuario creado exitosamente"
	msgCreateFailed  = "Error al crear el usuario"
	msgMissingRoleID = "El rol es obligatorio"
)

// RoleBody is the body of PUT /admin/usuarios/{id}/rol.
type RoleBody struct {
	Rol core.RoleString `json:"rol"`
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	result, err := s.handlers.RegisteredUsers.Handle(r.Context(), registeredusers.BuildQuery())
	if err != nil {
		s.writeError(w, r, err, msgUsersFailed)
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Users))
}

// createUser registers a user with any role. An empty role means reader.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequest
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	s.registerUser(w, r, body, msgUserCreated, msgCreateFailed)
}

func (s *Server) changeUserRole(w http.ResponseWriter, r *http.Request) {
	var body RoleBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if body.Rol == "" {
		writeMessage(w, http.StatusBadRequest, msgMissingRoleID)
		return
	}

	command := changeuserrole.BuildCommand(chi.URLParam(r, "id"), body.Rol, principalOf(r).UserID, s.now())

	if _, err := s.handlers.ChangeUserRole.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgChangeFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgRoleChanged)
}
