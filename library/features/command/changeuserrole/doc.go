// Package changeuserrole implements the Change User Role use case, reserved to administrators.
package changeuserrole
