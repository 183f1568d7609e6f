package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/biblioteca/library/features/command/placereservation"
	"github.com/AntonStoeckl/biblioteca/library/features/command/processfine"
	"github.com/AntonStoeckl/biblioteca/library/features/command/renewloan"
	"github.com/AntonStoeckl/biblioteca/library/features/command/requestloan"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerfines"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerloans"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerpanel"
	"github.com/AntonStoeckl/biblioteca/library/features/query/readerreservations"
)

const (
	msgReaderPanelFailed   = "Error al calcular el resumen del panel"
	msgLoanRequested       = "Solicitud de préstamo enviada exitosamente"
	msgLoanRequestFailed   = "Error al crear la solicitud de préstamo"
	msgReaderLoansFailed   = "Error al obtener los préstamos"
	msgReaderHistoryFailed = "Error al obtener el historial"
	msgLoanRenewed         = "Préstamo renovado exitosamente"
	msgRenewFailed         = "Error al renovar el préstamo"
	msgReaderFinesFailed   = "Error al obtener las multas"
	msgFinePaid            = "Multa marcada como pagada exitosamente"
	msgFineWaived          = "Multa condonada exitosamente"
	msgProcessFineFailed   = "Error al procesar multa"
	msgReservationsFailed  = "Error al obtener las reservas"
	msgReservationPlaced   = "Reserva creada exitosamente"
	msgReservationFailed   = "Error al crear la reserva"
	msgReservationCanceled = "Reserva cancelada exitosamente"
	msgCancelFailed        = "Error al cancelar la reserva"
)

// LoanRequestBody is the body of POST /lector/solicitudes.
type LoanRequestBody struct {
	Libros []core.BookIDString `json:"libros"`
}

// ReservationBody is the body of POST /lector/reservas.
type ReservationBody struct {
	LibroID core.BookIDString `json:"libroId"`
}

// ReaderFinesResponse is the body of GET /lector/multas.
type ReaderFinesResponse struct {
	Multas         []readerfines.Fine `json:"multas"`
	TotalPendiente float64            `json:"totalPendiente"`
}

func (s *Server) readerPanel(w http.ResponseWriter, r *http.Request) {
	summary, err := s.handlers.ReaderPanel.Handle(r.Context(), readerpanel.BuildQuery(principalOf(r).UserID, s.now()))
	if err != nil {
		s.writeError(w, r, err, msgReaderPanelFailed)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) requestLoan(w http.ResponseWriter, r *http.Request) {
	var body LoanRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	requestID := s.newID()
	command := requestloan.BuildCommand(requestID, principalOf(r).UserID, body.Libros, s.now())

	if _, err := s.handlers.RequestLoan.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgLoanRequestFailed)
		return
	}

	writeJSON(w, http.StatusCreated, MessageBody{Message: msgLoanRequested, ID: requestID})
}

func (s *Server) loadReaderLoans(w http.ResponseWriter, r *http.Request, fallbackMessage string) (readerloans.ReaderLoans, bool) {
	result, err := s.handlers.ReaderLoans.Handle(r.Context(), readerloans.BuildQuery(principalOf(r).UserID, s.now()))
	if err != nil {
		s.writeError(w, r, err, fallbackMessage)
		return readerloans.ReaderLoans{}, false
	}

	return result, true
}

func (s *Server) readerLoans(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadReaderLoans(w, r, msgReaderLoansFailed)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Active))
}

func (s *Server) readerHistory(w http.ResponseWriter, r *http.Request) {
	result, ok := s.loadReaderLoans(w, r, msgReaderHistoryFailed)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.History))
}

func (s *Server) renewLoan(w http.ResponseWriter, r *http.Request) {
	command := renewloan.BuildCommand(chi.URLParam(r, "id"), principalOf(r).UserID, s.now())

	if _, err := s.handlers.RenewLoan.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgRenewFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgLoanRenewed)
}

func (s *Server) readerFines(w http.ResponseWriter, r *http.Request) {
	result, err := s.handlers.ReaderFines.Handle(r.Context(), readerfines.BuildQuery(principalOf(r).UserID))
	if err != nil {
		s.writeError(w, r, err, msgReaderFinesFailed)
		return
	}

	writeJSON(w, http.StatusOK, ReaderFinesResponse{
		Multas:         orEmpty(result.Fines),
		TotalPendiente: result.TotalPendiente,
	})
}

func (s *Server) payOwnFine(w http.ResponseWriter, r *http.Request) {
	command := processfine.BuildCommand(chi.URLParam(r, "id"), processfine.ActionPay, principalOf(r).UserID, true, s.now())

	if _, err := s.handlers.ProcessFine.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgProcessFineFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgFinePaid)
}

func (s *Server) readerReservations(w http.ResponseWriter, r *http.Request) {
	query := readerreservations.BuildQuery(principalOf(r).UserID, s.now())

	result, err := s.handlers.ReaderReservations.Handle(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err, msgReservationsFailed)
		return
	}

	writeJSON(w, http.StatusOK, orEmpty(result.Reservations))
}

func (s *Server) placeReservation(w http.ResponseWriter, r *http.Request) {
	var body ReservationBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	reservationID := s.newID()
	command := placereservation.BuildCommand(reservationID, principalOf(r).UserID, body.LibroID, s.now())

	if _, err := s.handlers.PlaceReservation.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgReservationFailed)
		return
	}

	writeJSON(w, http.StatusCreated, MessageBody{Message: msgReservationPlaced, ID: reservationID})
}

func (s *Server) cancelReservation(w http.ResponseWriter, r *http.Request) {
	command := cancelreservation.BuildCommand(chi.URLParam(r, "id"), principalOf(r).UserID, s.now())

	if _, err := s.handlers.CancelReservation.Handle(r.Context(), command); err != nil {
		s.writeError(w, r, err, msgCancelFailed)
		return
	}

	writeMessage(w, http.StatusOK, msgReservationCanceled)
}
