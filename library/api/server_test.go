package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/biblioteca/library/api"
	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/shell"
	"github.com/AntonStoeckl/biblioteca/library/shell/auth"
	. "github.com/AntonStoeckl/biblioteca/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/biblioteca/testutil/observability/testdoubles"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type testServer struct {
	handler http.Handler
	tokens  auth.TokenIssuer
	es      shell.EventStore
}

func givenServer(t *testing.T) testServer {
	t.Helper()

	return givenServerWithOptions(t, func(*api.Options) {})
}

func givenServerWithCORS(t *testing.T, corsOrigin string) testServer {
	t.Helper()

	return givenServerWithOptions(t, func(opts *api.Options) { opts.CORSOrigin = corsOrigin })
}

func givenServerWithOptions(t *testing.T, configure func(opts *api.Options)) testServer {
	t.Helper()

	es := GivenMemoryEventStore()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	handlers, err := api.NewHandlers(api.HandlerDependencies{
		EventStore: es,
		Hasher:     hasher,
		Policy:     core.DefaultPolicy(),
	})
	require.NoError(t, err)

	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	opts := api.Options{
		Handlers:  &handlers,
		Tokens:    &tokens,
		Passwords: hasher,
	}
	configure(&opts)

	server, err := api.New(opts)
	require.NoError(t, err)

	return testServer{handler: server.Handler(), tokens: tokens, es: es}
}

func (ts testServer) do(t *testing.T, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	return rec
}

func (ts testServer) tokenFor(t *testing.T, userID string, role string) string {
	t.Helper()

	token, err := ts.tokens.Issue(userID, role)
	require.NoError(t, err)

	return token
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var target T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &target))

	return target
}

func (ts testServer) registerAndLogin(t *testing.T, email string) api.LoginResponse {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":            email,
		"password":         "secreto123",
		"nombre":           "Ana",
		"apellido_paterno": "Ruiz",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Email: email, Password: "secreto123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return decodeResponse[api.LoginResponse](t, rec)
}

func ptr[T any](v T) *T {
	return &v
}

func Test_Health(t *testing.T) {
	// arrange
	ts := givenServer(t)

	// act
	rec := ts.do(t, http.MethodGet, "/health", "", nil)

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func Test_CORS_Preflight_AllowsTheOriginWithoutCredentials(t *testing.T) {
	// arrange
	ts := givenServerWithCORS(t, "http://localhost:5173")
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/libros/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	// act
	ts.handler.ServeHTTP(rec, req)

	// assert
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func Test_Requests_AreMeasuredAndTracedPerRoute(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()
	ts := givenServerWithOptions(t, func(opts *api.Options) {
		opts.Metrics = metrics
		opts.Tracing = tracing
	})

	// act
	rec := ts.do(t, http.MethodGet, "/api/v1/libros/no-existe", "", nil)

	// assert
	assert.Equal(t, http.StatusNotFound, rec.Code)

	requests := metrics.CountersNamed("http_server_requests_total")
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v1/libros/{id}", requests[0].Labels["route"])
	assert.Equal(t, "404", requests[0].Labels["status_code"])
	require.Len(t, metrics.DurationRecords(), 1)

	require.Len(t, tracing.Spans(), 1)
	span := tracing.Spans()[0]
	assert.Equal(t, "HTTP GET", span.Name)
	assert.True(t, span.Finished)
	assert.Equal(t, shell.StatusSuccess, span.Status)
	assert.Equal(t, "/api/v1/libros/{id}", span.Attributes["route"])
}

func Test_Register_Login_And_Profile(t *testing.T) {
	// arrange
	ts := givenServer(t)

	// act
	login := ts.registerAndLogin(t, "Ana@Example.com")
	rec := ts.do(t, http.MethodGet, "/api/v1/perfil", login.AccessToken, nil)

	// assert
	assert.Equal(t, core.RoleReader, login.User.Rol)
	assert.Equal(t, "Ana Ruiz", login.User.NombreCompleto)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decodeResponse[api.ProfileResponse](t, rec)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "Ruiz", profile.ApellidoPaterno)
}

func Test_Register_RejectsMissingCredentials(t *testing.T) {
	// arrange
	ts := givenServer(t)

	// act
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "ana@example.com"})

	// assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Faltan el email y la contraseña", decodeResponse[api.ErrorBody](t, rec).Message)
}

func Test_Register_RejectsTakenEmail(t *testing.T) {
	// arrange
	ts := givenServer(t)
	ts.registerAndLogin(t, "ana@example.com")

	// act
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "ANA@example.com",
		"password": "otra",
		"nombre":   "Ana",
	})

	// assert
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func Test_Login_RejectsWrongPassword(t *testing.T) {
	// arrange
	ts := givenServer(t)
	ts.registerAndLogin(t, "ana@example.com")

	// act
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})

	// assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Credenciales inválidas", decodeResponse[api.ErrorBody](t, rec).Message)
}

func Test_ProtectedRoutes_RequireToken(t *testing.T) {
	// arrange
	ts := givenServer(t)

	// act
	missing := ts.do(t, http.MethodGet, "/api/v1/lector/panel/summary", "", nil)
	invalid := ts.do(t, http.MethodGet, "/api/v1/lector/panel/summary", "not-a-token", nil)

	// assert
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, http.StatusUnauthorized, invalid.Code)
}

func Test_LibrarianRoutes_UseTheCurrentRole(t *testing.T) {
	// arrange
	ts := givenServer(t)
	login := ts.registerAndLogin(t, "ana@example.com")
	staleToken := ts.tokenFor(t, login.User.ID, core.RoleLibrarian)

	// act
	rec := ts.do(t, http.MethodGet, "/api/v1/bibliotecario/panel/summary", staleToken, nil)

	// assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Acceso restringido a bibliotecarios", decodeResponse[api.ErrorBody](t, rec).Message)
}

func Test_AdminRoutes_RejectReaders(t *testing.T) {
	// arrange
	ts := givenServer(t)
	login := ts.registerAndLogin(t, "ana@example.com")

	// act
	rec := ts.do(t, http.MethodGet, "/api/v1/admin/usuarios", login.AccessToken, nil)

	// assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Acceso restringido a administradores", decodeResponse[api.ErrorBody](t, rec).Message)
}

func Test_Catalog_ListsAddedBooks(t *testing.T) {
	// arrange
	ts := givenServer(t)
	librarianID := GivenUniqueID(t)
	GivenEventsWereAppended(t, ts.es, FixtureLibrarianRegistered(librarianID, time.Now().Add(-time.Hour)))
	token := ts.tokenFor(t, librarianID, core.RoleLibrarian)

	// act
	added := ts.do(t, http.MethodPost, "/api/v1/bibliotecario/libros", token, api.AddBookBody{
		ISBN:     "978-0307474728",
		Nombre:   "Cien años de soledad",
		Autores:  []string{"Gabriel García Márquez"},
		Generos:  []string{"Novela"},
		Cantidad: ptr(2),
	})
	books := ts.do(t, http.MethodGet, "/api/v1/libros/", "", nil)
	missing := ts.do(t, http.MethodGet, "/api/v1/libros/no-existe", "", nil)

	// assert
	require.Equal(t, http.StatusCreated, added.Code, added.Body.String())
	bookID := decodeResponse[api.MessageBody](t, added).ID
	require.Equal(t, http.StatusOK, books.Code)
	listed := decodeResponse[[]map[string]any](t, books)
	require.Len(t, listed, 1)
	assert.Equal(t, bookID, listed[0]["id"])
	assert.EqualValues(t, 2, listed[0]["disponibles"])
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func Test_AddBook_WithoutQuantity_AddsOneCopy(t *testing.T) {
	// arrange
	ts := givenServer(t)
	librarianID := GivenUniqueID(t)
	GivenEventsWereAppended(t, ts.es, FixtureLibrarianRegistered(librarianID, time.Now().Add(-time.Hour)))
	token := ts.tokenFor(t, librarianID, core.RoleLibrarian)

	// act
	added := ts.do(t, http.MethodPost, "/api/v1/bibliotecario/libros", token, map[string]any{
		"isbn":   "978-8497592208",
		"nombre": "Rayuela",
	})
	books := ts.do(t, http.MethodGet, "/api/v1/libros/", "", nil)

	// assert
	require.Equal(t, http.StatusCreated, added.Code, added.Body.String())
	listed := decodeResponse[[]map[string]any](t, books)
	require.Len(t, listed, 1)
	assert.EqualValues(t, 1, listed[0]["cantidad"])
	assert.EqualValues(t, 1, listed[0]["disponibles"])
}

func Test_LoanRequest_IsApprovedAndShowsUpForTheReader(t *testing.T) {
	// arrange
	ts := givenServer(t)
	librarianID := GivenUniqueID(t)
	bookID := GivenUniqueID(t)
	GivenEventsWereAppended(t, ts.es,
		FixtureLibrarianRegistered(librarianID, time.Now().Add(-time.Hour)),
		FixtureBookAdded(bookID, 1, time.Now().Add(-time.Hour)),
	)
	librarianToken := ts.tokenFor(t, librarianID, core.RoleLibrarian)
	reader := ts.registerAndLogin(t, "ana@example.com")

	// act
	requested := ts.do(t, http.MethodPost, "/api/v1/lector/solicitudes", reader.AccessToken, api.LoanRequestBody{
		Libros: []string{bookID},
	})
	pending := ts.do(t, http.MethodGet, "/api/v1/bibliotecario/prestamos-pendientes", librarianToken, nil)
	requestID := decodeResponse[api.MessageBody](t, requested).ID
	approved := ts.do(t, http.MethodPost, "/api/v1/bibliotecario/solicitudes/"+requestID+"/aprobar", librarianToken, nil)
	approvedAgain := ts.do(t, http.MethodPost, "/api/v1/bibliotecario/solicitudes/"+requestID+"/aprobar", librarianToken, nil)
	loans := ts.do(t, http.MethodGet, "/api/v1/lector/prestamos", reader.AccessToken, nil)
	panel := ts.do(t, http.MethodGet, "/api/v1/lector/panel/summary", reader.AccessToken, nil)

	// assert
	require.Equal(t, http.StatusCreated, requested.Code, requested.Body.String())
	require.Equal(t, http.StatusOK, pending.Code)
	assert.Len(t, decodeResponse[[]map[string]any](t, pending), 1)
	assert.Equal(t, http.StatusOK, approved.Code, approved.Body.String())
	assert.Equal(t, "Solicitud aprobada y préstamo(s) creado(s) exitosamente", decodeResponse[api.MessageBody](t, approved).Message)
	assert.Equal(t, http.StatusOK, approvedAgain.Code)
	require.Equal(t, http.StatusOK, loans.Code)
	assert.Len(t, decodeResponse[[]map[string]any](t, loans), 1)
	require.Equal(t, http.StatusOK, panel.Code)
	assert.EqualValues(t, 1, decodeResponse[map[string]any](t, panel)["prestamosActivos"])
}

func Test_Reservation_PlaceAndCancel(t *testing.T) {
	// arrange
	ts := givenServer(t)
	bookID := GivenUniqueID(t)
	borrowerID := GivenUniqueID(t)
	requestID := GivenUniqueID(t)
	past := time.Now().Add(-time.Hour)
	GivenEventsWereAppended(t, ts.es,
		FixtureBookAdded(bookID, 1, past),
		FixtureReaderRegistered(borrowerID, borrowerID+"@example.com", past),
		FixtureLoanStarted(requestID, borrowerID, bookID, past, core.DefaultPolicy()),
	)
	reader := ts.registerAndLogin(t, "ana@example.com")

	// act
	placed := ts.do(t, http.MethodPost, "/api/v1/lector/reservas", reader.AccessToken, api.ReservationBody{LibroID: bookID})
	reservationID := decodeResponse[api.MessageBody](t, placed).ID
	listed := ts.do(t, http.MethodGet, "/api/v1/lector/reservas", reader.AccessToken, nil)
	canceled := ts.do(t, http.MethodDelete, "/api/v1/lector/reservas/"+reservationID, reader.AccessToken, nil)

	// assert
	require.Equal(t, http.StatusCreated, placed.Code, placed.Body.String())
	require.Equal(t, http.StatusOK, listed.Code)
	reservations := decodeResponse[[]map[string]any](t, listed)
	require.Len(t, reservations, 1)
	assert.Equal(t, core.ReservationStatusWaiting, reservations[0]["estado"])
	assert.Equal(t, http.StatusOK, canceled.Code, canceled.Body.String())
}

func Test_ProcessFine_RejectsUnknownActions(t *testing.T) {
	// arrange
	ts := givenServer(t)
	librarianID := GivenUniqueID(t)
	GivenEventsWereAppended(t, ts.es, FixtureLibrarianRegistered(librarianID, time.Now().Add(-time.Hour)))
	token := ts.tokenFor(t, librarianID, core.RoleLibrarian)

	// act
	rec := ts.do(t, http.MethodPost, "/api/v1/bibliotecario/multas/"+GivenUniqueID(t)+"/procesar", token, api.ProcessFineBody{Action: "perdonar"})

	// assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Acción no válida. Use 'pagar' o 'condonar'.", decodeResponse[api.ErrorBody](t, rec).Message)
}
