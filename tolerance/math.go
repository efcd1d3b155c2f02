package tolerance

import "math"

// Round, floorRaw and ceilRaw are thin aliases over math's versions,
// kept in one place so Settings.Floor/Ceil read as tolerance-aware
// wrappers around a single well-known primitive rather than scattering
// math.* calls through settings.go.
func Round(v float64) float64 { return math.Round(v) }

func floorRaw(v float64) float64 { return math.Floor(v) }

func ceilRaw(v float64) float64 { return math.Ceil(v) }
