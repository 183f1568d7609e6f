package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/registeruser"
	"github.com/AntonStoeckl/biblioteca/library/features/query/userlookup"
)

const (
	msgRegistered         = "Usuario registrado exitosamente"
	msgRegisterFailed     = "Ocurrió un error al registrar el usuario"
	msgMissingCredentials = "Faltan el email y la contraseña"
	msgInvalidCredentials = "Credenciales inválidas"
	msgLoginFailed        = "Error al iniciar sesión"
	msgInvalidBirthDate   = "Formato de fecha inválido, use AAAA-MM-DD"

	birthDateLayout = "2006-01-02"
)

// ProfileFields are the personal data fields shared by registration, user creation and profile updates.
type ProfileFields struct {
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
	Genero          string `json:"genero"`
}

// RegisterRequest is the body of POST /auth/register and POST /admin/usuarios.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol,omitempty"`
	ProfileFields
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the access token and what the front-end shows about the user.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// LoginUser is the user part of LoginResponse.
type LoginUser struct {
	ID             core.UserIDString `json:"id"`
	Rol            core.RoleString   `json:"rol"`
	NombreCompleto string            `json:"nombreCompleto"`
}

func (f ProfileFields) toProfile() (core.Profile, bool) {
	birthDate := strings.TrimSpace(f.FechaNacimiento)
	if birthDate != "" {
		if _, err := time.Parse(birthDateLayout, birthDate); err != nil {
			return core.Profile{}, false
		}
	}

	return core.Profile{
		FirstName:       strings.TrimSpace(f.Nombre),
		PaternalSurname: strings.TrimSpace(f.ApellidoPaterno),
		MaternalSurname: strings.TrimSpace(f.ApellidoMaterno),
		BirthDate:       birthDate,
		Phone:           strings.TrimSpace(f.Telefono),
		Address:         strings.TrimSpace(f.Direccion),
		Gender:          strings.TrimSpace(f.Genero),
	}, true
}

// register always creates readers.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequest
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	body.Rol = core.RoleReader
	s.registerUser(w, r, body, msgRegistered, msgRegisterFailed)
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request, body RegisterRequest, successMessage, fallbackMessage string) {
	if strings.TrimSpace(body.Email) == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	profile, ok := body.toProfile()
	if !ok {
		writeMessage(w, http.StatusBadRequest, msgInvalidBirthDate)
		return
	}

	userID := s.newID()
	command := registeruser.BuildCommand(userID, body.Email, body.Password, body.Rol, profile, s.now())

	if _, err := s.handlers.RegisterUser.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, fallbackMessage)
		return
	}

	writeJSON(w, http.StatusCreated, MessageBody{Message: successMessage, ID: userID})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if strings.TrimSpace(body.Email) == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	user, err := s.handlers.UserLookup.Handle(r.Context(), userlookup.BuildByEmailQuery(body.Email))
	if err != nil {
		s.writeError(w, r, err, msgLoginFailed)
		return
	}

	if !user.Found || s.passwords == nil || !s.passwords.Matches(user.PasswordHash, body.Password) {
		writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := s.tokens.Issue(user.UserID, user.Role)
	if err != nil {
		s.writeError(w, r, err, msgLoginFailed)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		User: LoginUser{
			ID:             user.UserID,
			Rol:            user.Role,
			NombreCompleto: user.Profile.DisplayName(),
		},
	})
}
