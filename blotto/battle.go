// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package blotto

// Battle plays two distributions against each other. On each battlefield
// the larger allocation takes the battlefield's worth; equal allocations
// split it. It returns the points won by a and by b.
func Battle(a, b, worths []int) (float64, float64) {
	var pa, pb float64
	for i, w := range worths {
		switch worth := float64(w); {
		case a[i] > b[i]:
			pa += worth
		case a[i] < b[i]:
			pb += worth
		default:
			pa += worth / 2
			pb += worth / 2
		}
	}
	return pa, pb
}
