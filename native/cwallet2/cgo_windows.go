// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

//go:build xmr && windows && cgo

package cwallet2

// On Windows, the libwallet2_api_c.dll library is linked via the cgo LDFLAGS
// in wallet.go.
//
// At runtime, copy the DLL next to the executable:
//
//	copy native\lib\windows-amd64\libwallet2_api_c.dll .\
//
// Windows searches for DLLs in the executable's directory first, so this is
// the simplest approach.
