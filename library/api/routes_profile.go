package api

import (
	"net/http"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/updateprofile"
	"github.com/AntonStoeckl/biblioteca/library/features/query/userlookup"
)

const (
	msgUserNotFound     = "Usuario no encontrado"
	msgProfileFailed    = "Error al obtener el perfil"
	msgProfileUpdated   = "Perfil actualizado exitosamente"
	msgProfileNotStored = "Error al actualizar el perfil"
)

// ProfileResponse is the body of GET /perfil.
type ProfileResponse struct {
	ID             core.UserIDString `json:"id"`
	Email          string            `json:"email"`
	Rol            core.RoleString   `json:"rol"`
	NombreCompleto string            `json:"nombreCompleto"`
	FechaRegistro  time.Time         `json:"fechaRegistro"`
	ProfileFields
}

func profileFieldsOf(p core.Profile) ProfileFields {
	return ProfileFields{
		Nombre:          p.FirstName,
		ApellidoPaterno: p.PaternalSurname,
		ApellidoMaterno: p.MaternalSurname,
		FechaNacimiento: p.BirthDate,
		Telefono:        p.Phone,
		Direccion:       p.Address,
		Genero:          p.Gender,
	}
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.handlers.UserLookup.Handle(r.Context(), userlookup.BuildByIDQuery(principalOf(r).UserID))
	if err != nil {
		s.writeError(w, r, err, msgProfileFailed)
		return
	}

	if !user.Found {
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		ID:             user.UserID,
		Email:          user.Email,
		Rol:            user.Role,
		NombreCompleto: user.Profile.DisplayName(),
		FechaRegistro:  user.RegisteredAt,
		ProfileFields:  profileFieldsOf(user.Profile),
	})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var body ProfileFields
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	profile, ok := body.toProfile()
	if !ok {
		writeMessage(w, http.StatusBadRequest, msgInvalidBirthDate)
		return
	}

	command := updateprofile.BuildCommand(principalOf(r).UserID, profile, s.now())
	if _, err := s.handlers.UpdateProfile.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgProfileNotStored)
		return
	}

	writeMessage(w, http.StatusOK, msgProfileUpdated)
}
