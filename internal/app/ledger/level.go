package ledger

import "math"

// The level curve is quadratic: the boundary for level n sits at
// (n-1)² × 100 XP, so level = floor(sqrt(xp/100)) + 1.
// L1 starts at 0, L2 at 100, L3 at 400, L4 at 900.

// XPForLevel returns the cumulative XP threshold at which a level begins.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level - 1)
	return n * n * 100
}

// LevelForXP derives the level for a cumulative XP total.
func LevelForXP(xp int64) int {
	if xp <= 0 {
		return 1
	}
	level := int(math.Sqrt(float64(xp)/100)) + 1
	// math.Sqrt can land a hair off an exact boundary; settle it in integers.
	for XPForLevel(level+1) <= xp {
		level++
	}
	for level > 1 && XPForLevel(level) > xp {
		level--
	}
	return level
}

// XPToNextLevel returns XP remaining until the next level boundary.
func XPToNextLevel(xp int64) int64 {
	remaining := XPForLevel(LevelForXP(xp)+1) - xp
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// ProgressPct returns progress toward the next level, clamped to 0–100.
func ProgressPct(xp int64) float64 {
	level := LevelForXP(xp)
	lo := XPForLevel(level)
	hi := XPForLevel(level + 1)
	span := hi - lo
	if span <= 0 {
		return 100.0
	}
	pct := float64(xp-lo) / float64(span) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
