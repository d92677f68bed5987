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

// Decoder is a decoding session over one native decoder state.
// Not safe for concurrent use.
type Decoder struct {
	h          *handle
	sampleRate int
	channels   int
}

// NewDecoder creates a decoding session. sampleRate must be one of
// SampleRates, channels 1 or 2. A creation failure leaves no native
// state behind.
func NewDecoder(sampleRate, channels int) (*Decoder, error) {
	if err := checkSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if err := checkChannels(channels); err != nil {
		return nil, err
	}
	var errno C.int
	p := C.opus_decoder_create(C.opus_int32(sampleRate), C.int(channels), &errno)
	if err := unwrap(errno); err != nil {
		if p != nil {
			C.opus_decoder_destroy(p)
		}
		return nil, err
	}
	return &Decoder{
		h:          newHandle(unsafe.Pointer(p), freeDecoder),
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

func freeDecoder(p unsafe.Pointer) { C.opus_decoder_destroy((*C.OpusDecoder)(p)) }

// Decode decompresses one packet into pcm and returns the number of
// samples written per channel; the interleaved value count is the return
// times the channel count, the byte count that times 2. Callers must use
// the return, not len(pcm): a packet may carry less audio than the buffer
// holds.
func (dec *Decoder) Decode(data []byte, pcm []int16) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: no packet data; use DecodePLC for lost packets", ErrInvalidArgument)
	}
	if err := dec.checkTarget(pcm); err != nil {
		return 0, err
	}
	if dec.h.closed() {
		return 0, ErrClosed
	}
	return dec.decode(data, pcm, len(pcm)/dec.channels, false)
}

// DecodePLC synthesizes audio for one lost packet. len(pcm) selects the
// missing duration and must make a whole frame of 2.5, 5, 10, 20, 40 or
// 60 ms. Returns the number of samples written per channel.
func (dec *Decoder) DecodePLC(pcm []int16) (int, error) {
	if err := dec.checkTarget(pcm); err != nil {
		return 0, err
	}
	frame, ok := DurationFromSamples(len(pcm)/dec.channels, dec.sampleRate)
	if !ok {
		return 0, fmt.Errorf("%w: pcm length %d is not a whole frame of %s at %d Hz",
			ErrInvalidArgument, len(pcm), legalFrames, dec.sampleRate)
	}
	if dec.h.closed() {
		return 0, ErrClosed
	}
	return dec.decode(nil, pcm, frame.SampleCount(dec.sampleRate), true)
}

func (dec *Decoder) checkTarget(pcm []int16) error {
	if len(pcm) == 0 {
		return fmt.Errorf("%w: empty pcm target buffer", ErrInvalidArgument)
	}
	if len(pcm)%dec.channels != 0 {
		return fmt.Errorf("%w: pcm length must be a multiple of %d channels", ErrInvalidArgument, dec.channels)
	}
	return nil
}

// decode invokes the native entry point. A nil data slice is passed as a
// null address with zero length, which asks the codec to conceal a lost
// packet of exactly samples duration.
func (dec *Decoder) decode(data []byte, pcm []int16, samples int, fec bool) (int, error) {
	var dataPtr *C.uchar
	if len(data) > 0 {
		dataPtr = (*C.uchar)(&data[0])
	}
	fecFlag := C.int(0)
	if fec {
		fecFlag = 1
	}
	n := C.opus_decode(
		(*C.OpusDecoder)(dec.h.ptr),
		dataPtr,
		C.opus_int32(len(data)),
		(*C.opus_int16)(&pcm[0]),
		C.int(samples),
		fecFlag)
	runtime.KeepAlive(dec.h)
	if err := unwrap(n); err != nil {
		return 0, err
	}
	return int(n), nil
}

// LastPacketDuration returns the per-channel sample count of the last
// packet decoded or concealed.
func (dec *Decoder) LastPacketDuration() (int, error) {
	v, err := dec.ctlGet(ctlLastPacketDuration)
	return int(v), err
}

// SampleRate returns the sampling rate the session was created with.
func (dec *Decoder) SampleRate() int { return dec.sampleRate }

// Channels returns the channel count the session was created with.
func (dec *Decoder) Channels() int { return dec.channels }

// IsClosed reports whether the native state has been released.
func (dec *Decoder) IsClosed() bool { return dec.h.closed() }

// Close releases the native state. Safe to call more than once.
func (dec *Decoder) Close() error {
	dec.h.close()
	return nil
}
