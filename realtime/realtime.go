// Package realtime provides the exact (seconds, nanoseconds) timestamp
// value used for sample-accurate feature timing.
//
// RealTime is a plain value type with exact integer arithmetic; unlike
// time.Duration it keeps the seconds/nanoseconds split the plugin ABI
// works in, and it can represent negative times (pre-roll timestamps).
package realtime

import "fmt"

const nanosPerSecond = 1_000_000_000

// RealTime is an exact time value. The zero value is time zero.
//
// Invariant: Nsec always has the same sign as Sec (or is zero) and its
// magnitude is below one second. All constructors and arithmetic
// normalise to that form.
type RealTime struct {
	Sec  int
	Nsec int
}

// New returns a normalised RealTime from a (seconds, nanoseconds) pair.
// The pair need not be normalised; nanoseconds may exceed a second or
// disagree in sign with the seconds.
func New(sec, nsec int) RealTime {
	return RealTime{Sec: sec, Nsec: nsec}.normalised()
}

// FromSeconds converts floating seconds to the nearest nanosecond.
func FromSeconds(s float64) RealTime {
	if s >= 0 {
		sec := int(s)
		nsec := int((s-float64(sec))*nanosPerSecond + 0.5)
		return RealTime{Sec: sec, Nsec: nsec}.normalised()
	}
	r := FromSeconds(-s)
	return RealTime{Sec: -r.Sec, Nsec: -r.Nsec}
}

// FromMilliseconds converts integer milliseconds.
func FromMilliseconds(ms int64) RealTime {
	return RealTime{Sec: int(ms / 1000), Nsec: int(ms%1000) * 1_000_000}.normalised()
}

// FromFrame converts a frame (sample) index at the given sample rate,
// rounding to the nearest nanosecond. This is the conversion hosts use to
// stamp each process block.
func FromFrame(frame int64, sampleRate float64) RealTime {
	if sampleRate <= 0 {
		return RealTime{}
	}
	if frame < 0 {
		r := FromFrame(-frame, sampleRate)
		return RealTime{Sec: -r.Sec, Nsec: -r.Nsec}
	}
	sec := frame / int64(sampleRate)
	remainder := float64(frame - sec*int64(sampleRate))
	nsec := int(remainder/sampleRate*nanosPerSecond + 0.5)
	return RealTime{Sec: int(sec), Nsec: nsec}.normalised()
}

func (r RealTime) normalised() RealTime {
	sec, nsec := r.Sec, r.Nsec
	if nsec <= -nanosPerSecond || nsec >= nanosPerSecond {
		sec += nsec / nanosPerSecond
		nsec %= nanosPerSecond
	}
	if sec > 0 && nsec < 0 {
		sec--
		nsec += nanosPerSecond
	} else if sec < 0 && nsec > 0 {
		sec++
		nsec -= nanosPerSecond
	}
	return RealTime{Sec: sec, Nsec: nsec}
}

// Seconds returns the value as floating seconds.
func (r RealTime) Seconds() float64 {
	return float64(r.Sec) + float64(r.Nsec)/nanosPerSecond
}

// Frame returns the nearest frame index at the given sample rate.
func (r RealTime) Frame(sampleRate float64) int64 {
	return int64(r.Seconds()*sampleRate + 0.5)
}

// Add returns r + other, exactly.
func (r RealTime) Add(other RealTime) RealTime {
	return RealTime{Sec: r.Sec + other.Sec, Nsec: r.Nsec + other.Nsec}.normalised()
}

// Sub returns r - other, exactly.
func (r RealTime) Sub(other RealTime) RealTime {
	return RealTime{Sec: r.Sec - other.Sec, Nsec: r.Nsec - other.Nsec}.normalised()
}

// Cmp compares two values, returning -1, 0 or 1.
func (r RealTime) Cmp(other RealTime) int {
	if r.Sec != other.Sec {
		if r.Sec < other.Sec {
			return -1
		}
		return 1
	}
	if r.Nsec != other.Nsec {
		if r.Nsec < other.Nsec {
			return -1
		}
		return 1
	}
	return 0
}

// String formats the value as seconds with nanosecond precision, with
// trailing zeros trimmed, e.g. "1.5" or "-0.000000001".
func (r RealTime) String() string {
	sec, nsec := r.Sec, r.Nsec
	neg := sec < 0 || nsec < 0
	if sec < 0 {
		sec = -sec
	}
	if nsec < 0 {
		nsec = -nsec
	}
	s := fmt.Sprintf("%d.%09d", sec, nsec)
	for len(s) > 1 && s[len(s)-1] == '0' && s[len(s)-2] != '.' {
		s = s[:len(s)-1]
	}
	if nsec == 0 {
		s = fmt.Sprintf("%d", sec)
	}
	if neg {
		return "-" + s
	}
	return s
}
