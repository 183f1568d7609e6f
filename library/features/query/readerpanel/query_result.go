package readerpanel

// Summary is the query result.
type Summary struct {
	NombreCompleto     string `json:"nombreCompleto"`
	PrestamosActivos   int    `json:"prestamosActivos"`
	MultasActivas      int    `json:"multasActivas"`
	ReservasPendientes int    `json:"reservasPendientes"`
	TotalPrestados     int    `json:"totalPrestados"`
}
