// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between renderer, backend and the
// packages that lay out controls on screen.
package core
