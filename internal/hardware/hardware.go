// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

// Package hardware probes the CPU features that gate backend selection.
package hardware

import "sync"

// HasAES reports whether the CPU supports AES round instructions. The
// probe runs at most once; every subsequent call returns the cached
// result.
var HasAES = sync.OnceValue(detectAES)
