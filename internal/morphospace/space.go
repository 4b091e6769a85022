// Package morphospace implements the weathering parameter space: a fixed
// five-axis coordinate system, Euclidean nearest-neighbour classification
// over ordered catalogs, waveform interpolation, oscillation sequencing and
// graded vocabulary selection.
//
// Everything here is a pure function of its arguments. Catalogs and
// vocabulary tables are built once and never mutated, so values can be
// shared across goroutines without locking.
package morphospace

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Axis indexes one dimension of the space.
type Axis int

const (
	// ExposureDuration: 0 = freshly made, 1 = ancient/geological time.
	ExposureDuration Axis = iota
	// AgentIntensity: 0 = sheltered, 1 = extreme environmental attack.
	AgentIntensity
	// MaterialResistance: 0 = fragile/porous, 1 = hard/dense.
	MaterialResistance
	// InterventionState: 0 = untouched, 1 = heavily restored.
	InterventionState
	// AestheticCharacter: 0 = destructive decay, 1 = noble patina.
	AestheticCharacter

	NumAxes = 5
)

// Bounds shared by every axis.
const (
	MinValue = 0.0
	MaxValue = 1.0
)

var axisNames = [NumAxes]string{
	"exposure_duration",
	"agent_intensity",
	"material_resistance",
	"intervention_state",
	"aesthetic_character",
}

func (a Axis) String() string {
	if a < 0 || int(a) >= NumAxes {
		return "axis(" + strconv.Itoa(int(a)) + ")"
	}
	return axisNames[a]
}

// AxisNames returns the axis names in axis order.
func AxisNames() []string {
	out := make([]string, NumAxes)
	copy(out, axisNames[:])
	return out
}

// ParseAxis resolves an axis name.
func ParseAxis(name string) (Axis, error) {
	for i, n := range axisNames {
		if n == name {
			return Axis(i), nil
		}
	}
	return 0, &Error{
		Kind:    KindValidation,
		Op:      "parse axis",
		Message: "unknown axis " + strconv.Quote(name),
		Valid:   AxisNames(),
	}
}

// Coordinate is one point of the space, indexed by Axis.
type Coordinate [NumAxes]float64

// NewCoordinate builds a Coordinate from values given in axis order.
func NewCoordinate(exposure, agent, resistance, intervention, aesthetic float64) Coordinate {
	return Coordinate{exposure, agent, resistance, intervention, aesthetic}
}

// At returns the value on axis a.
func (c Coordinate) At(a Axis) float64 { return c[a] }

// ParseCoordinate converts an axis-name keyed mapping into a Coordinate.
// The mapping must name every axis exactly once; missing or extra keys,
// non-finite values and values outside [MinValue, MaxValue] are validation
// errors.
func ParseCoordinate(m map[string]float64) (Coordinate, error) {
	const op = "parse coordinate"
	var c Coordinate
	if m == nil {
		return c, &Error{Kind: KindValidation, Op: op, Message: "coordinate is required", Valid: AxisNames()}
	}
	for i, name := range axisNames {
		v, ok := m[name]
		if !ok {
			return c, &Error{Kind: KindValidation, Op: op, Message: "missing axis " + strconv.Quote(name), Valid: AxisNames()}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return c, Validationf(op, "axis %s is not a finite number", name)
		}
		if v < MinValue || v > MaxValue {
			return c, Validationf(op, "axis %s = %g outside [%g, %g]", name, v, MinValue, MaxValue)
		}
		c[i] = v
	}
	if len(m) != NumAxes {
		var extra []string
		for k := range m {
			if _, err := ParseAxis(k); err != nil {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		return c, &Error{Kind: KindValidation, Op: op, Message: "unexpected axes " + strconv.Quote(strings.Join(extra, ", ")), Valid: AxisNames()}
	}
	return c, nil
}

// Map returns the coordinate as an axis-name keyed mapping.
func (c Coordinate) Map() map[string]float64 {
	m := make(map[string]float64, NumAxes)
	for i, name := range axisNames {
		m[name] = c[i]
	}
	return m
}

// Round returns c with every axis rounded to the given number of decimal places.
func (c Coordinate) Round(places int) Coordinate {
	var out Coordinate
	for i, v := range c {
		out[i] = Round(v, places)
	}
	return out
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// MarshalJSON writes the coordinate as an object with keys in axis order.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, name := range axisNames {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(name))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(c[i], 'f', -1, 64))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON accepts the object form produced by MarshalJSON and applies
// the same checks as ParseCoordinate.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := ParseCoordinate(m)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
