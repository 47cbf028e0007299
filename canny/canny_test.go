// Copyright 2026 GridCV. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package canny_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcv/gridcv/canny"
	"github.com/gridcv/gridcv/imageio"
)

// Black-box run of the full public surface: parse, detect, serialize.
func TestEdges_PublicRoundTrip(t *testing.T) {
	in := strings.TrimSpace(`
5 5 1
0 0 255 0 0
0 0 255 0 0
0 0 255 0 0
0 0 255 0 0
0 0 255 0 0
`) + "\n"

	img, err := imageio.Read(strings.NewReader(in))
	require.NoError(t, err)

	edges := canny.Edges(img, 4)
	require.True(t, edges.Equal(canny.EdgesSequential(img)))

	var out strings.Builder
	require.NoError(t, imageio.Write(&out, edges))

	back, err := imageio.Read(strings.NewReader(out.String()))
	require.NoError(t, err)
	assert.True(t, edges.Equal(back))

	for _, v := range edges.Data() {
		assert.Contains(t, []int{0, 255}, v, "edge map values must be 0 or 255")
	}
}
