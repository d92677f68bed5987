// Package audio chunks arbitrary-length PCM streams into the whole
// frames the codec accepts.
package audio

import (
	"fmt"

	"github.com/voicekit/opus/pkg/logger"
	"github.com/voicekit/opus/pkg/opus"
)

// FrameEncoder compresses one whole frame of interleaved PCM per call.
// Satisfied by *opus.Encoder.
type FrameEncoder interface {
	Encode(pcm []int16) ([]byte, error)
	SampleRate() int
	Channels() int
}

// Writer feeds arbitrary-length PCM writes into a FrameEncoder one frame
// at a time and hands every produced packet to a callback. Like the
// encoder itself it is not safe for concurrent use.
type Writer struct {
	enc      FrameEncoder
	buf      *Buffer
	onPacket func([]byte) error
	log      *logger.Logger
	frames   int
}

// NewWriter returns a writer emitting one packet per frame of the given
// duration.
func NewWriter(enc FrameEncoder, frame opus.FrameDuration, onPacket func([]byte) error, log *logger.Logger) (*Writer, error) {
	if !frame.Valid() {
		return nil, fmt.Errorf("%w: frame duration %gms", opus.ErrInvalidArgument, frame.Millis())
	}
	if onPacket == nil {
		return nil, fmt.Errorf("%w: nil packet callback", opus.ErrInvalidArgument)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Writer{
		enc:      enc,
		buf:      NewBuffer(frame.SampleCount(enc.SampleRate()) * enc.Channels()),
		onPacket: onPacket,
		log:      log,
	}, nil
}

// Write buffers pcm and encodes every completed frame. Returns the
// number of values consumed; on an encode or callback failure the
// remainder of pcm is left unconsumed.
func (w *Writer) Write(pcm []int16) (int, error) {
	written := 0
	for written < len(pcm) {
		written += w.buf.Write(pcm[written:])
		if w.buf.Full() {
			if err := w.emit(w.buf.Frame()); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// Flush encodes any buffered partial frame, padded with silence.
func (w *Writer) Flush() error {
	n := w.buf.Len()
	if n == 0 {
		return nil
	}
	frame := w.buf.Frame()
	for i := n; i < len(frame); i++ {
		frame[i] = 0
	}
	w.buf.Reset()
	w.log.Debug().Int("buffered", n).Int("frame", len(frame)).Msg("padding partial frame")
	return w.emit(frame)
}

func (w *Writer) emit(frame []int16) error {
	data, err := w.enc.Encode(frame)
	if err != nil {
		return err
	}
	w.frames++
	return w.onPacket(data)
}

// Frames returns the number of packets emitted so far.
func (w *Writer) Frames() int { return w.frames }
