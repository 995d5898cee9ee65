// Package hjarta wires configuration sources into an Fx application.
//
// Documents are loaded into data containers (see package data) and traversed
// with keypath paths. Components merge several member documents behind one
// container (see package component).
package hjarta
