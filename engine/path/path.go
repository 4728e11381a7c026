// Package path finds walking routes with a wave-front search.
package path

import "github.com/nathoo/temple/engine/geo"

// MaxRounds bounds the number of waves expanded before giving up.
const MaxRounds = 2000

// Find returns the unit steps that lead from origin to target, or nil when
// target is impassable, origin equals target, or no wave reaches origin
// within MaxRounds.
//
// Waves are grown backwards from target. Each round expands the newest wave
// through geo.Neighbours, collecting passable cells not seen in any earlier
// wave, and stops as soon as origin is touched. origin itself is not tested
// for passability since the walker usually stands there.
func Find(origin, target geo.Point, passable func(geo.Point) bool) []geo.Point {
	if !passable(target) || origin == target {
		return nil
	}

	// Newest wave first.
	waves := [][]geo.Point{{target}}
	seen := map[geo.Point]bool{target: true}
	found := false

	for round := 0; round < MaxRounds && !found; round++ {
		var next []geo.Point
	expand:
		for _, p := range waves[0] {
			for _, shift := range geo.Neighbours {
				n := p.Add(shift)
				if n == origin {
					found = true
					break expand
				}
				if seen[n] || !passable(n) {
					continue
				}
				seen[n] = true
				next = append(next, n)
			}
		}
		if found {
			break
		}
		if len(next) == 0 {
			return nil
		}
		waves = append([][]geo.Point{next}, waves...)
	}
	if !found {
		return nil
	}

	steps := make([]geo.Point, 0, len(waves))
	prev := origin
	for _, wave := range waves {
		for _, p := range wave {
			if prev.Adjacent(p) {
				steps = append(steps, p.Sub(prev))
				prev = p
				break
			}
		}
	}
	return steps
}
