package opus

// FrameDuration is the time slice one encode or decode call covers,
// in milliseconds. Only the six listed values are legal.
type FrameDuration float64

const (
	Frame2500us FrameDuration = 2.5
	Frame5ms    FrameDuration = 5
	Frame10ms   FrameDuration = 10
	Frame20ms   FrameDuration = 20
	Frame40ms   FrameDuration = 40
	Frame60ms   FrameDuration = 60
)

var frameDurations = [...]FrameDuration{
	Frame2500us, Frame5ms, Frame10ms, Frame20ms, Frame40ms, Frame60ms,
}

const legalFrames = "2.5, 5, 10, 20, 40 or 60 ms"

// Millis returns the duration as a millisecond count.
func (d FrameDuration) Millis() float64 { return float64(d) }

// Valid reports whether d is one of the six legal frame durations.
func (d FrameDuration) Valid() bool {
	for _, f := range frameDurations {
		if f == d {
			return true
		}
	}
	return false
}

// SampleCount returns the per-channel sample count of one frame at the
// given sampling rate.
func (d FrameDuration) SampleCount(sampleRate int) int {
	return int(float64(d) * float64(sampleRate) / 1000)
}

// Bytes returns the raw 16-bit PCM byte length of one frame.
func (d FrameDuration) Bytes(sampleRate, channels int) int {
	return d.SampleCount(sampleRate) * channels * 2
}

// DurationFromSamples maps a per-channel sample count back to the frame
// duration it represents at the given rate. ok is false when the count
// does not land exactly on a legal duration.
func DurationFromSamples(samples, sampleRate int) (d FrameDuration, ok bool) {
	for _, f := range frameDurations {
		if f.SampleCount(sampleRate) == samples {
			return f, true
		}
	}
	return 0, false
}

// DurationFromBytes is DurationFromSamples for a raw PCM byte length.
func DurationFromBytes(n, sampleRate, channels int) (FrameDuration, bool) {
	if n <= 0 || n%(channels*2) != 0 {
		return 0, false
	}
	return DurationFromSamples(n/(channels*2), sampleRate)
}
