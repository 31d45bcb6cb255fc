package layout

import (
	"math"
	"strings"
	"testing"
	"time"
	"unicode"
)

func TestTypeToClass(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Gas Giant", "gas-giant"},
		{"Red Dwarf", "red-dwarf"},
		{"Terrestrial Planet", "terrestrial-planet"},
		{"Binary  Star\tSystem", "binary-star-system"},
		{"Neutron", "neutron"},
		{"", ""},
		{" Blue Giant ", "-blue-giant-"},
	}

	for _, tt := range tests {
		got := TypeToClass(tt.input)
		if got != tt.expected {
			t.Errorf("TypeToClass(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTypeToClass_LowercaseNoWhitespace(t *testing.T) {
	labels := []string{"White Dwarf", "RED SUPERGIANT", "Ice\nGiant", "Habitable   Planet", "Ω Star"}

	for _, label := range labels {
		got := TypeToClass(label)
		if got != strings.ToLower(got) {
			t.Errorf("TypeToClass(%q) = %q is not lowercase", label, got)
		}
		if strings.IndexFunc(got, unicode.IsSpace) >= 0 {
			t.Errorf("TypeToClass(%q) = %q contains whitespace", label, got)
		}
	}
}

func TestStarVisualSize(t *testing.T) {
	tests := []struct {
		size     float64
		expected float64
	}{
		{0, 10},      // log2(1) = 0, clamped up
		{0.1, 10},    // tiny, clamped up
		{1, 15},      // log2(2) * 15
		{3, 30},      // log2(4) * 15
		{1e9, 200},   // clamped down
		{1e300, 200}, // still clamped
	}

	for _, tt := range tests {
		got := StarVisualSize(tt.size)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("StarVisualSize(%v) = %v, want %v", tt.size, got, tt.expected)
		}
	}
}

func TestStarVisualSize_MonotonicAndBounded(t *testing.T) {
	prev := StarVisualSize(0)
	for size := 0.01; size < 1e6; size *= 1.7 {
		got := StarVisualSize(size)
		if got < 10 || got > 200 {
			t.Fatalf("StarVisualSize(%v) = %v, outside [10, 200]", size, got)
		}
		if got < prev {
			t.Fatalf("StarVisualSize(%v) = %v, smaller than previous %v", size, got, prev)
		}
		prev = got
	}
}

func TestBinaryOffset(t *testing.T) {
	const visual = 40.0

	left := BinaryOffset(0, 2, visual)
	right := BinaryOffset(1, 2, visual)

	if left != -28 {
		t.Errorf("BinaryOffset(0, 2) = %v, want -28", left)
	}
	if right != 28 {
		t.Errorf("BinaryOffset(1, 2) = %v, want 28", right)
	}
	if left+right != 0 {
		t.Errorf("binary offsets should cancel, got %v and %v", left, right)
	}

	if got := BinaryOffset(0, 1, visual); got != 0 {
		t.Errorf("single star offset = %v, want 0", got)
	}
}

func TestPlanetVisualSize(t *testing.T) {
	tests := []struct {
		size     float64
		expected float64
	}{
		{0.3, 8},
		{0.8, 8},
		{1, 10},
		{5, 50},
		{11.2, 112},
	}

	for _, tt := range tests {
		got := PlanetVisualSize(tt.size)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("PlanetVisualSize(%v) = %v, want %v", tt.size, got, tt.expected)
		}
	}
}

func TestOrbitRadius(t *testing.T) {
	if got := OrbitRadius(0); got != 100 {
		t.Errorf("OrbitRadius(0) = %v, want 100", got)
	}
	if got := OrbitRadius(2); got != 220 {
		t.Errorf("OrbitRadius(2) = %v, want 220", got)
	}
	for i := 1; i < 20; i++ {
		if OrbitRadius(i) <= OrbitRadius(i-1) {
			t.Errorf("OrbitRadius not strictly increasing at %d", i)
		}
	}
}

func TestOrbitPeriod(t *testing.T) {
	if got := OrbitPeriod(0); got != 20*time.Second {
		t.Errorf("OrbitPeriod(0) = %v, want 20s", got)
	}
	if got := OrbitPeriod(3); got != 65*time.Second {
		t.Errorf("OrbitPeriod(3) = %v, want 65s", got)
	}
	for i := 1; i < 20; i++ {
		if OrbitPeriod(i) <= OrbitPeriod(i-1) {
			t.Errorf("OrbitPeriod not strictly increasing at %d", i)
		}
	}
}

func TestOrbitAngle(t *testing.T) {
	tests := []struct {
		index    int
		elapsed  time.Duration
		expected float64
	}{
		{0, 0, 0},
		{0, 5 * time.Second, math.Pi / 2},
		{0, 10 * time.Second, math.Pi},
		{0, 20 * time.Second, 0}, // full revolution
		{1, 35 * time.Second / 2, math.Pi},
		{0, -time.Second, 0},
	}

	for _, tt := range tests {
		got := OrbitAngle(OrbitPeriod(tt.index), tt.elapsed)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("OrbitAngle(orbit %d, %v) = %v, want %v", tt.index, tt.elapsed, got, tt.expected)
		}
	}
}

func TestPlanetColor(t *testing.T) {
	tests := []struct {
		planetType string
		expected   string
	}{
		{"Terrestrial Planet", "#a9a9a9"},
		{"Gas Giant", "#d2b48c"},
		{"Ice Giant", "#add8e6"},
		{"Ocean Planet", "#4682b4"},
		{"Desert Planet", "#c19a6b"},
		{"Lava Planet", "#ff4500"},
		{"Carbon Planet", "#36454f"},
		{"Habitable Planet", "#3cb371"},
		{"Unknown", "#ffffff"},
		{"", "#ffffff"},
		{"gas giant", "#ffffff"}, // labels are case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.planetType, func(t *testing.T) {
			if got := PlanetColor(tt.planetType); got != tt.expected {
				t.Errorf("PlanetColor(%q) = %q, want %q", tt.planetType, got, tt.expected)
			}
		})
	}
}

func TestPlanetTypes_AllColored(t *testing.T) {
	types := PlanetTypes()
	if len(types) != 8 {
		t.Fatalf("PlanetTypes() returned %d types, want 8", len(types))
	}
	for _, pt := range types {
		if PlanetColor(pt) == DefaultColor {
			t.Errorf("PlanetColor(%q) fell back to default", pt)
		}
	}
}
