// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

//go:build !xmr

// Package cwallet2 implements the native binding contracts over monero_c.
//
// This package requires the monero_c library and must be built with the
// "xmr" build tag:
//
//	go build -tags xmr
//
// See doc.go for library installation instructions.
package cwallet2

import (
	"errors"

	"github.com/cypherstack/cs-monero/native"
)

// Available reports whether this binary was built with native wallet
// support.
const Available = false

// TheManager panics without the xmr build tag. Callers should check
// Available first.
func TheManager() native.Manager {
	panic(errUnavailable)
}

// SetLogLevel is a no-op without the xmr build tag.
func SetLogLevel(int) {}

var errUnavailable = errors.New("built without native wallet support; rebuild with -tags xmr")
