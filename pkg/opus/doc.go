// Package opus binds the system libopus codec for voice-oriented
// real-time audio compression.
//
// An Encoder or Decoder owns exactly one native codec state. The state is
// released once, either by an explicit Close or by the garbage collector
// when the session becomes unreachable. After Close every other call fails
// with ErrClosed.
//
//	enc, err := opus.NewEncoder(48000, 2, opus.AppVoIP)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer enc.Close()
//
//	packet, err := enc.Encode(pcm) // pcm holds one whole frame
//
// PCM is 16-bit linear, interleaved by channel. A single call covers one
// frame of 2.5, 5, 10, 20, 40 or 60 ms; buffers that do not land exactly
// on one of those durations are rejected before any native call.
//
// # Thread safety
//
// Sessions are NOT safe for concurrent use: the native codec state is not
// reentrant and this package adds no locking. Serialize calls into one
// session, or give each goroutine its own. Independent sessions share
// nothing.
package opus
