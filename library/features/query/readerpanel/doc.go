// Package readerpanel implements the summary shown on the reader dashboard.
package readerpanel
