package opus

import "fmt"

// FrameDecoder is a decoding session pinned to one frame duration at
// construction. Pinning makes the forward-error-correction calls always
// legal on the type: every buffer they need is derived from the pinned
// duration, so there is no runtime coupling to get wrong.
//
// It exists for callers of the fixed-frame API; new code that handles
// variable frame sizes should use Decoder directly.
type FrameDecoder struct {
	dec     *Decoder
	frame   FrameDuration
	samples int
}

// NewFrameDecoder creates a decoding session that only produces frames of
// the given duration.
func NewFrameDecoder(sampleRate, channels int, frame FrameDuration) (*FrameDecoder, error) {
	if !frame.Valid() {
		return nil, fmt.Errorf("%w: frame duration must be one of %s, got %gms", ErrInvalidArgument, legalFrames, float64(frame))
	}
	dec, err := NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &FrameDecoder{
		dec:     dec,
		frame:   frame,
		samples: frame.SampleCount(sampleRate),
	}, nil
}

func (d *FrameDecoder) newFrame() []int16 { return make([]int16, d.samples*d.dec.channels) }

// Decode decompresses one packet into a freshly allocated frame buffer,
// truncated to the audio actually decoded.
func (d *FrameDecoder) Decode(data []byte) ([]int16, error) {
	pcm := d.newFrame()
	n, err := d.dec.Decode(data, pcm)
	if err != nil {
		return nil, err
	}
	return pcm[:n*d.dec.channels], nil
}

// DecodeFEC reconstructs the packet preceding data from its in-band
// error-correction payload. data is the packet that followed the lost
// one; the result covers exactly the pinned frame duration.
func (d *FrameDecoder) DecodeFEC(data []byte) ([]int16, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no packet data supplied", ErrInvalidArgument)
	}
	pcm := d.newFrame()
	if d.dec.h.closed() {
		return nil, ErrClosed
	}
	if _, err := d.dec.decode(data, pcm, d.samples, true); err != nil {
		return nil, err
	}
	return pcm, nil
}

// Conceal synthesizes one pinned-duration frame for a lost packet with no
// surviving error-correction data.
func (d *FrameDecoder) Conceal() ([]int16, error) {
	pcm := d.newFrame()
	n, err := d.dec.DecodePLC(pcm)
	if err != nil {
		return nil, err
	}
	return pcm[:n*d.dec.channels], nil
}

// FrameDuration returns the pinned frame duration.
func (d *FrameDecoder) FrameDuration() FrameDuration { return d.frame }

// IsClosed reports whether the native state has been released.
func (d *FrameDecoder) IsClosed() bool { return d.dec.IsClosed() }

// Close releases the native state. Safe to call more than once.
func (d *FrameDecoder) Close() error { return d.dec.Close() }
