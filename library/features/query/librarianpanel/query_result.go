package librarianpanel

// Summary is the query result.
type Summary struct {
	PrestamosPendientes int `json:"prestamosPendientes"`
	MultasActivas       int `json:"multasActivas"`
	LibrosEnCatalogo    int `json:"librosEnCatalogo"`
	CopiasDisponibles   int `json:"copiasDisponibles"`
}
