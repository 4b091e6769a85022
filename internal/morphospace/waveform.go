package morphospace

import (
	"math"
	"strconv"
)

// Waveform is the shape mapping a cycle phase to a blend weight.
type Waveform int

const (
	Sinusoidal Waveform = iota
	Triangular
	Square
)

var waveformNames = [...]string{"sinusoidal", "triangular", "square"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return "waveform(" + strconv.Itoa(int(w)) + ")"
	}
	return waveformNames[w]
}

// WaveformNames lists the accepted waveform names.
func WaveformNames() []string {
	return append([]string(nil), waveformNames[:]...)
}

// ParseWaveform resolves a waveform name. Unknown names are rejected rather
// than treated as a linear blend.
func ParseWaveform(name string) (Waveform, error) {
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, &Error{
		Kind:    KindValidation,
		Op:      "parse waveform",
		Message: "unknown waveform " + strconv.Quote(name),
		Valid:   WaveformNames(),
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Waveform) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Waveform) UnmarshalText(b []byte) error {
	parsed, err := ParseWaveform(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Alpha maps phase in [0,1] to a blend weight in [0,1].
//
//	sinusoidal: 0.5*(1-cos(pi*phase)), monotone half-cosine ease
//	triangular: 2*phase up to 0.5, then 2*(1-phase)
//	square:     0 below 0.5, 1 from 0.5
func (w Waveform) Alpha(phase float64) float64 {
	switch w {
	case Sinusoidal:
		// cos is inexact at pi and pi/2; pin the endpoints.
		switch phase {
		case 0:
			return 0
		case 0.5:
			return 0.5
		case 1:
			return 1
		}
		return 0.5 * (1 - math.Cos(math.Pi*phase))
	case Triangular:
		if phase <= 0.5 {
			return 2 * phase
		}
		return 2 * (1 - phase)
	case Square:
		if phase < 0.5 {
			return 0
		}
		return 1
	}
	return phase
}

// Interpolate blends a toward b by w.Alpha(phase) on every axis.
// phase must be a finite value in [0,1].
func Interpolate(a, b Coordinate, phase float64, w Waveform) (Coordinate, error) {
	if math.IsNaN(phase) || phase < 0 || phase > 1 {
		return Coordinate{}, Validationf("interpolate", "phase %g outside [0, 1]", phase)
	}
	if int(w) < 0 || int(w) >= len(waveformNames) {
		return Coordinate{}, &Error{Kind: KindValidation, Op: "interpolate", Message: "unknown waveform " + w.String(), Valid: WaveformNames()}
	}
	return blend(a, b, w.Alpha(phase)), nil
}

func blend(a, b Coordinate, alpha float64) Coordinate {
	switch alpha {
	case 0:
		return a
	case 1:
		return b
	}
	var out Coordinate
	for i := range a {
		out[i] = a[i] + alpha*(b[i]-a[i])
	}
	return out
}
