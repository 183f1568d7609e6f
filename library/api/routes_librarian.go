package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/addbook"
	"github.com/AntonStoeckl/biblioteca/library/features/command/adjustbookcopies"
	"github.com/AntonStoeckl/biblioteca/library/features/command/approveloanrequest"
	"github.com/AntonStoeckl/biblioteca/library/features/command/processfine"
	"github.com/AntonStoeckl/biblioteca/library/features/command/rejectloanrequest"
	"github.com/AntonStoeckl/biblioteca/library/features/command/removebook"
	"github.com/AntonStoeckl/biblioteca/library/features/command/returnbook"
	"github.com/AntonStoeckl/biblioteca/library/features/query/activeloans"
	"github.com/AntonStoeckl/biblioteca/library/features/query/librarianpanel"
	"github.com/AntonStoeckl/biblioteca/library/features/query/pendingfines"
	"github.com/AntonStoeckl/biblioteca/library/features/query/pendingloanrequests"
)

const (
	msgLibrarianPanelFailed = "Error al obtener el resumen del panel del bibliotecario"
	msgPendingLoansFailed   = "Error al obtener préstamos pendientes"
	msgActiveLoansFailed    = "Error al obtener préstamos activos"
	msgRequestApproved      = "Solicitud aprobada y préstamo(s) creado(s) exitosamente"
	msgApproveFailed        = "Error al aprobar solicitud"
	msgRequestRejected      = "Solicitud rechazada exitosamente"
	msgRejectFailed         = "Error al rechazar solicitud"
	msgBookReturned         = "Libro devuelto exitosamente"
	msgReturnFailed         = "Error al registrar la devolución"
	msgFinesFailed          = "Error al obtener multas activas"
	msgBookAdded            = "Libro agregado exitosamente"
	msgAddBookFailed        = "Error al agregar el libro"
	msgCopiesAdjusted       = "Cantidad de copias actualizada exitosamente"
	msgAdjustFailed         = "Error al actualizar la cantidad de copias"
	msgBookRemoved          = "Libro eliminado del catálogo exitosamente"
	msgRemoveFailed         = "Error al eliminar el libro"
	msgMissingCopies        = "La cantidad es obligatoria"

	queryParamAll = "todas"

	defaultCopies = 1
)

// ProcessFineBody is the body of POST /bibliotecario/multas/{id}/procesar.
type ProcessFineBody struct {
	Action string `json:"action"`
}

// AddBookBody is the body of POST /bibliotecario/libros. A missing cantidad means one copy.
type AddBookBody struct {
	ISBN     core.ISBNString `json:"isbn"`
	Nombre   string          `json:"nombre"`
	Autores  []string        `json:"autores"`
	Generos  []string        `json:"generos"`
	Cantidad *int            `json:"cantidad,omitempty"`
}

// CopiesBody is the body of PUT /bibliotecario/libros/{id}/copias.
type CopiesBody struct {
	Cantidad *int `json:"cantidad"`
}

func (s *Server) librarianPanel(w http.ResponseWriter, r *http.Request) {
	summary, err := s.handlers.LibrarianPanel.Handle(r.Context(), librarianpanel.BuildQuery(s.now()))
	if err != nil {
		s.writeError(w, r, err, msgLibrarianPanelFailed)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) pendingLoanRequests(w http.ResponseWriter, r *http.Request) {
	result, err := s.handlers.PendingLoanRequests.Handle(r.Context(), pendingloanrequests.BuildQuery())
	if err != nil {
		s.writeError(w, r, err, msgPendingLoansFailed)
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Requests))
}

func (s *Server) activeLoans(w http.ResponseWriter, r *http.Request) {
	result, err := s.handlers.ActiveLoans.Handle(r.Context(), activeloans.BuildQuery(s.now()))
	if err != nil {
		s.writeError(w, r, err, msgActiveLoansFailed)
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Loans))
}

func (s *Server) approveLoanRequest(w http.ResponseWriter, r *http.Request) {
	command := approveloanrequest.BuildCommand(chi.URLParam(r, "id"), principalOf(r).UserID, s.now())

	if _, err := s.handlers.ApproveLoanRequest.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgApproveFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgRequestApproved)
}

func (s *Server) rejectLoanRequest(w http.ResponseWriter, r *http.Request) {
	command := rejectloanrequest.BuildCommand(chi.URLParam(r, "id"), principalOf(r).UserID, s.now())

	if _, err := s.handlers.RejectLoanRequest.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgRejectFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgRequestRejected)
}

func (s *Server) returnBook(w http.ResponseWriter, r *http.Request) {
	command := returnbook.BuildCommand(chi.URLParam(r, "id"), principalOf(r).UserID, s.now())

	if _, err := s.handlers.ReturnBook.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgReturnFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgBookReturned)
}

// pendingFines lists pending fines, or all fines with ?todas=true.
func (s *Server) pendingFines(w http.ResponseWriter, r *http.Request) {
	includeClosed, _ := strconv.ParseBool(r.URL.Query().Get(queryParamAll))

	result, err := s.handlers.PendingFines.Handle(r.Context(), pendingfines.BuildQuery(includeClosed))
	if err != nil {
		s.writeError(w, r, err, msgFinesFailed)
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Fines))
}

func (s *Server) processFine(w http.ResponseWriter, r *http.Request) {
	var body ProcessFineBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	command := processfine.BuildCommand(chi.URLParam(r, "id"), body.Action, principalOf(r).UserID, false, s.now())

	if _, err := s.handlers.ProcessFine.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgProcessFineFailed)
		return
	}

	if command.Action == processfine.ActionWaive {
		writeMessage(w, http.StatusOK, msgFineWaived)
		return
	}

	writeMessage(w, http.StatusOK, msgFinePaid)
}

func (s *Server) addBook(w http.ResponseWriter, r *http.Request) {
	var body AddBookBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	copies := defaultCopies
	if body.Cantidad != nil {
		copies = *body.Cantidad
	}

	bookID := s.newID()
	command := addbook.BuildCommand(bookID, body.ISBN, body.Nombre, body.Autores, body.Generos, copies, s.now())

	if _, err := s.handlers.AddBook.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgAddBookFailed)
		return
	}

	writeJSON(w, http.StatusCreated, MessageBody{Message: msgBookAdded, ID: bookID})
}

func (s *Server) adjustBookCopies(w http.ResponseWriter, r *http.Request) {
	var body CopiesBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if body.Cantidad == nil {
		writeMessage(w, http.StatusBadRequest, msgMissingCopies)
		return
	}

	command := adjustbookcopies.BuildCommand(chi.URLParam(r, "id"), *body.Cantidad, s.now())

	if _, err := s.handlers.AdjustBookCopies.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgAdjustFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgCopiesAdjusted)
}

func (s *Server) removeBook(w http.ResponseWriter, r *http.Request) {
	command := removebook.BuildCommand(chi.URLParam(r, "id"), s.now())

	if _, err := s.handlers.RemoveBook.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgRemoveFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgBookRemoved)
}
