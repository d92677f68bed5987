package opus

/*
#cgo pkg-config: opus

#include <opus.h>
*/
import "C"
import (
	"fmt"
	"runtime"
	"unsafe"
)

// Application selects the encoder's optimization profile.
type Application int

const (
	// Optimize encoding for voice signals
	AppVoIP = Application(C.OPUS_APPLICATION_VOIP)
	// Optimize encoding for non-voice signals like music
	AppAudio = Application(C.OPUS_APPLICATION_AUDIO)
	// Optimize encoding for low latency applications
	AppRestrictedLowDelay = Application(C.OPUS_APPLICATION_RESTRICTED_LOWDELAY)
)

func (a Application) valid() bool {
	switch a {
	case AppVoIP, AppAudio, AppRestrictedLowDelay:
		return true
	}
	return false
}

// Bitrate bounds for SetBitrate, in bits per second.
const (
	MinBitrate     = 8000
	MaxBitrate     = 512000
	DefaultBitrate = 128000
)

// Encoder is an encoding session over one native encoder state.
// Not safe for concurrent use.
type Encoder struct {
	h          *handle
	sampleRate int
	channels   int

	// Target rate used to size Encode's output allocation. The native
	// state stays in output-buffer-driven mode (OPUS_BITRATE_MAX), so the
	// allocation is what actually caps the packet size.
	bitrate int
}

// NewEncoder creates an encoding session. sampleRate must be one of
// SampleRates, channels 1 or 2. A creation failure leaves no native
// state behind.
func NewEncoder(sampleRate, channels int, app Application) (*Encoder, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if err := checkChannels(channels); err != nil {
		return nil, err
	}
	if !app.valid() {
		return nil, fmt.Errorf("%w: unknown application profile %d", ErrInvalidArgument, int(app))
	}
	var errno C.int
	p := C.opus_encoder_create(C.opus_int32(sampleRate), C.int(channels), C.int(app), &errno)
	if err := unwrap(errno); err != nil {
		if p != nil {
			C.opus_encoder_destroy(p)
		}
		return nil, err
	}
	enc := &Encoder{
		h:          newHandle(unsafe.Pointer(p), freeEncoder),
		sampleRate: sampleRate,
		channels:   channels,
		bitrate:    DefaultBitrate,
	}
	if err := enc.ctlSet(ctlBitrate, C.OPUS_BITRATE_MAX); err != nil {
		enc.Close()
		return nil, err
	}
	return enc, nil
}

func freeEncoder(p unsafe.Pointer) { C.opus_encoder_destroy((*C.OpusEncoder)(p)) }

// Encode compresses exactly one frame of interleaved 16-bit PCM and
// returns the packet. len(pcm) must make a whole frame of 2.5, 5, 10,
// 20, 40 or 60 ms at the session's rate and channel count. The returned
// slice is freshly allocated; its capacity may exceed its length.
func (enc *Encoder) Encode(pcm []int16) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: no pcm data supplied", ErrInvalidArgument)
	}
	if len(pcm)%enc.channels != 0 {
		return nil, fmt.Errorf("%w: pcm length must be a multiple of %d channels", ErrInvalidArgument, enc.channels)
	}
	samples := len(pcm) / enc.channels
	frame, ok := DurationFromSamples(samples, enc.sampleRate)
	if !ok {
		return nil, fmt.Errorf("%w: pcm length %d is not a whole frame of %s at %d Hz",
			ErrInvalidArgument, len(pcm), legalFrames, enc.sampleRate)
	}
	if enc.h.closed() {
		return nil, ErrClosed
	}
	// Capacity estimate from the target bitrate; the native encoder
	// regulates the rate to fit it.
	data := make([]byte, int(frame.Millis()*float64(enc.bitrate)/8/1000))
	n := C.opus_encode(
		(*C.OpusEncoder)(enc.h.ptr),
		(*C.opus_int16)(&pcm[0]),
		C.int(samples),
		(*C.uchar)(&data[0]),
		C.opus_int32(cap(data)))
	runtime.KeepAlive(enc.h)
	if err := unwrap(C.int(n)); err != nil {
		return nil, err
	}
	return data[:n], nil
}

// SetBitrate sets the local target bitrate used to size Encode's output
// allocation. It is not forwarded to the native state.
func (enc *Encoder) SetBitrate(bps int) error {
	if enc.h.closed() {
		return ErrClosed
	}
	if bps < MinBitrate || bps > MaxBitrate {
		return fmt.Errorf("%w: bitrate must be in [%d, %d] bps, got %d", ErrInvalidArgument, MinBitrate, MaxBitrate, bps)
	}
	enc.bitrate = bps
	return nil
}

// Bitrate returns the local target bitrate.
func (enc *Encoder) Bitrate() (int, error) {
	if enc.h.closed() {
		return 0, ErrClosed
	}
	return enc.bitrate, nil
}

// SampleRate returns the sampling rate the session was created with.
func (enc *Encoder) SampleRate() int { return enc.sampleRate }

// Channels returns the channel count the session was created with.
func (enc *Encoder) Channels() int { return enc.channels }

// IsClosed reports whether the native state has been released.
func (enc *Encoder) IsClosed() bool { return enc.h.closed() }

// Close releases the native state. Safe to call more than once.
func (enc *Encoder) Close() error {
	enc.h.close()
	return nil
}
