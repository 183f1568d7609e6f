// Package observable wraps command and query handlers with structured logging of their start,
// outcome and duration. The wrapped handlers stay free of logging concerns.
package observable
