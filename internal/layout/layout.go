// Package layout computes visual geometry for catalog bodies.
//
// Every function here is pure. Sizes and radii are in surface pixels.
package layout

import (
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	minStarSize   = 10.0
	maxStarSize   = 200.0
	starLogFactor = 15.0

	// binarySpread is the fraction of a star's visual size each binary
	// component is pushed away from the system center.
	binarySpread = 0.7

	minPlanetSize     = 8.0
	planetScaleFactor = 10.0

	baseOrbitRadius = 100.0
	orbitSpacing    = 60.0

	baseOrbitPeriod = 20 * time.Second
	periodSpacing   = 15 * time.Second

	// DefaultColor is used for planet types outside the known set.
	DefaultColor = "#ffffff"
)

// Planet type labels with a dedicated color.
const (
	PlanetTerrestrial = "Terrestrial Planet"
	PlanetGasGiant    = "Gas Giant"
	PlanetIceGiant    = "Ice Giant"
	PlanetOcean       = "Ocean Planet"
	PlanetDesert      = "Desert Planet"
	PlanetLava        = "Lava Planet"
	PlanetCarbon      = "Carbon Planet"
	PlanetHabitable   = "Habitable Planet"
)

var planetColors = map[string]string{
	PlanetTerrestrial: "#a9a9a9",
	PlanetGasGiant:    "#d2b48c",
	PlanetIceGiant:    "#add8e6",
	PlanetOcean:       "#4682b4",
	PlanetDesert:      "#c19a6b",
	PlanetLava:        "#ff4500",
	PlanetCarbon:      "#36454f",
	PlanetHabitable:   "#3cb371",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// TypeToClass converts a category label into a style token:
// lowercased, with each run of whitespace replaced by a single dash.
func TypeToClass(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "-")
}

// StarVisualSize maps a star radius (solar radii) onto a log scale
// clamped to [10, 200] px.
func StarVisualSize(size float64) float64 {
	px := math.Log2(size+1) * starLogFactor
	return math.Max(minStarSize, math.Min(maxStarSize, px))
}

// BinaryOffset returns the horizontal offset of star index in a system of
// count stars. Only two-star systems are spread apart.
func BinaryOffset(index, count int, visualSize float64) float64 {
	if count != 2 {
		return 0
	}
	offset := visualSize * binarySpread
	if index == 0 {
		return -offset
	}
	return offset
}

// PlanetVisualSize maps a planet radius (Earth radii) linearly, with a floor
// so small planets stay visible.
func PlanetVisualSize(size float64) float64 {
	return math.Max(minPlanetSize, size*planetScaleFactor)
}

// OrbitRadius returns the orbit radius for a zero-based orbit index.
func OrbitRadius(index int) float64 {
	return baseOrbitRadius + float64(index)*orbitSpacing
}

// OrbitPeriod returns the animation period for a zero-based orbit index.
// Outer orbits are slower.
func OrbitPeriod(index int) time.Duration {
	return baseOrbitPeriod + time.Duration(index)*periodSpacing
}

// OrbitAngle returns the angle in radians reached after elapsed animation
// time on an orbit with the given period. Every orbit starts at angle 0.
func OrbitAngle(period, elapsed time.Duration) float64 {
	if period <= 0 || elapsed < 0 {
		return 0
	}
	phase := float64(elapsed%period) / float64(period)
	return 2 * math.Pi * phase
}

// PlanetColor returns the display color for a planet type label.
func PlanetColor(planetType string) string {
	if c, ok := planetColors[planetType]; ok {
		return c
	}
	return DefaultColor
}

// PlanetTypes returns the planet type labels that have a dedicated color.
func PlanetTypes() []string {
	return []string{
		PlanetTerrestrial, PlanetGasGiant, PlanetIceGiant, PlanetOcean,
		PlanetDesert, PlanetLava, PlanetCarbon, PlanetHabitable,
	}
}
