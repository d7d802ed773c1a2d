// Copyright (C) 2026 Sealbox Authors
//
// This work is licensed under the Creative Commons Attribution-NonCommercial-
// NoDerivatives 4.0 International License. To view a copy of this license,
// visit http://creativecommons.org/licenses/by-nc-nd/4.0/ or send a letter to
// Creative Commons, PO Box 1866, Mountain View, CA 94042, USA.

package hardware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasAESStable(t *testing.T) {
	require := require.New(t)

	first := HasAES()
	for i := 0; i < 8; i++ {
		require.Equal(first, HasAES(), "HasAES() - probe result cached")
	}
	require.Equal(first, detectAES(), "HasAES() - matches raw probe")
}
