// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

//go:build xmr

/*
Package cwallet2 implements the native binding contracts over monero_c, a C
wrapper around Monero's wallet2 library.

# Building

This package requires the monero_c shared library and the "xmr" build tag:

	go build -tags xmr

The library can be built from source at https://github.com/MrCyjaneK/monero_c

On Linux, install the library to /usr/local/lib or another path in the linker
search path, or set CGO_LDFLAGS:

	CGO_LDFLAGS="-L/path/to/lib" go build -tags xmr

On macOS, you may need DYLD_LIBRARY_PATH set at runtime. On Windows, the DLL
must be in PATH or next to the executable.

# Usage

Code should not call this package directly outside of wiring; every native
call is made from the worker goroutine that owns the wallet. See the worker
package.

	mgr := cwallet2.TheManager()
	w, err := mgr.CreateWallet("/path/to/wallet", "password", "English", cs.Mainnet)
	if err != nil {
		log.Fatal(err)
	}
	defer mgr.CloseWallet(w, true)
*/
package cwallet2
