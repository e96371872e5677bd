package backdrop

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/harshit0019/portfolio/internal/field"
)

// Mode selects which fields make up the backdrop.
type Mode string

const (
	Particles     Mode = "particles"
	Constellation Mode = "constellation"
	Both          Mode = "both"
)

// Modes lists every supported mode.
var Modes = []Mode{Particles, Constellation, Both}

var ErrUnknownMode = errors.New("unknown backdrop mode")

// ParseMode parses a mode name case-insensitively. An empty name selects
// Both, which is what the site shows by default.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Both, nil
	case Particles, Constellation, Both:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Spec describes one layer of a backdrop.
type Spec struct {
	Name    string
	Opacity float64
	New     func(rng *rand.Rand) field.Field
}

var (
	particleSpec = Spec{
		Name:    string(Particles),
		Opacity: 1,
		New:     func(rng *rand.Rand) field.Field { return field.NewParticles(rng) },
	}
	constellationSpec = Spec{
		Name:    string(Constellation),
		Opacity: 0.5,
		New:     func(rng *rand.Rand) field.Field { return field.NewConstellation(rng) },
	}
)

// Layers returns the layers of m, bottom first.
func (m Mode) Layers() []Spec {
	switch m {
	case Particles:
		return []Spec{particleSpec}
	case Constellation:
		return []Spec{constellationSpec}
	case Both:
		return []Spec{particleSpec, constellationSpec}
	}
	return nil
}
