package prayer

import "time"

// Prayer names one of the six daily times. Sunrise is included as the end
// of the Fajr window.
type Prayer int

const (
	None Prayer = iota
	Fajr
	Sunrise
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Prayers lists the six daily times in order.
var Prayers = []Prayer{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

func (p Prayer) String() string {
	switch p {
	case Fajr:
		return "Fajr"
	case Sunrise:
		return "Sunrise"
	case Dhuhr:
		return "Dhuhr"
	case Asr:
		return "Asr"
	case Maghrib:
		return "Maghrib"
	case Isha:
		return "Isha"
	default:
		return "None"
	}
}

// TimeFor returns the time of p, or the zero time for None.
func (t Times) TimeFor(p Prayer) time.Time {
	switch p {
	case Fajr:
		return t.Fajr
	case Sunrise:
		return t.Sunrise
	case Dhuhr:
		return t.Dhuhr
	case Asr:
		return t.Asr
	case Maghrib:
		return t.Maghrib
	case Isha:
		return t.Isha
	default:
		return time.Time{}
	}
}

// Current returns the latest prayer whose time is not after at, or None
// before Fajr.
func (t Times) Current(at time.Time) Prayer {
	for i := len(Prayers) - 1; i >= 0; i-- {
		if !t.TimeFor(Prayers[i]).After(at) {
			return Prayers[i]
		}
	}
	return None
}

// Next returns the first prayer strictly after at, or None once Isha has
// begun.
func (t Times) Next(at time.Time) Prayer {
	for _, p := range Prayers {
		if t.TimeFor(p).After(at) {
			return p
		}
	}
	return None
}

// All returns the six times in order.
func (t Times) All() []time.Time {
	out := make([]time.Time, len(Prayers))
	for i, p := range Prayers {
		out[i] = t.TimeFor(p)
	}
	return out
}
