package opus

/*
#cgo pkg-config: opus

#include <opus.h>

// opus_*_ctl are variadic macros over a request id plus one opus_int32
// in or out argument, which cgo cannot call directly.
int bridge_encoder_ctl_set(OpusEncoder *st, int request, opus_int32 value) { return opus_encoder_ctl(st, request, value); }
int bridge_encoder_ctl_get(OpusEncoder *st, int request, opus_int32 *value) { return opus_encoder_ctl(st, request, value); }
int bridge_encoder_reset(OpusEncoder *st) { return opus_encoder_ctl(st, OPUS_RESET_STATE); }
int bridge_decoder_ctl_get(OpusDecoder *st, int request, opus_int32 *value) { return opus_decoder_ctl(st, request, value); }
*/
import "C"
import (
	"fmt"
	"runtime"
)

// ctlReq pairs the get/set request ids of one tunable on the native
// control channel.
type ctlReq struct {
	get C.int
	set C.int
}

var (
	ctlBitrate        = ctlReq{C.OPUS_GET_BITRATE_REQUEST, C.OPUS_SET_BITRATE_REQUEST}
	ctlVBR            = ctlReq{C.OPUS_GET_VBR_REQUEST, C.OPUS_SET_VBR_REQUEST}
	ctlMaxBandwidth   = ctlReq{C.OPUS_GET_MAX_BANDWIDTH_REQUEST, C.OPUS_SET_MAX_BANDWIDTH_REQUEST}
	ctlComplexity     = ctlReq{C.OPUS_GET_COMPLEXITY_REQUEST, C.OPUS_SET_COMPLEXITY_REQUEST}
	ctlInBandFEC      = ctlReq{C.OPUS_GET_INBAND_FEC_REQUEST, C.OPUS_SET_INBAND_FEC_REQUEST}
	ctlPacketLossPerc = ctlReq{C.OPUS_GET_PACKET_LOSS_PERC_REQUEST, C.OPUS_SET_PACKET_LOSS_PERC_REQUEST}
	ctlForceChannels  = ctlReq{C.OPUS_GET_FORCE_CHANNELS_REQUEST, C.OPUS_SET_FORCE_CHANNELS_REQUEST}
	ctlDTX            = ctlReq{C.OPUS_GET_DTX_REQUEST, C.OPUS_SET_DTX_REQUEST}

	ctlLastPacketDuration = ctlReq{get: C.OPUS_GET_LAST_PACKET_DURATION_REQUEST}
)

func (enc *Encoder) ctlSet(req ctlReq, value int32) error {
	if enc.h.closed() {
		return ErrClosed
	}
	res := C.bridge_encoder_ctl_set((*C.OpusEncoder)(enc.h.ptr), req.set, C.opus_int32(value))
	runtime.KeepAlive(enc.h)
	return unwrap(res)
}

func (enc *Encoder) ctlGet(req ctlReq) (int32, error) {
	if enc.h.closed() {
		return 0, ErrClosed
	}
	var value C.opus_int32
	res := C.bridge_encoder_ctl_get((*C.OpusEncoder)(enc.h.ptr), req.get, &value)
	runtime.KeepAlive(enc.h)
	return int32(value), unwrap(res)
}

func (enc *Encoder) ctlSetBool(req ctlReq, on bool) error {
	var v int32
	if on {
		v = 1
	}
	return enc.ctlSet(req, v)
}

func (enc *Encoder) ctlGetBool(req ctlReq) (bool, error) {
	v, err := enc.ctlGet(req)
	return v != 0, err
}

// Bandwidth is the encoder's bandpass limit.
type Bandwidth int

const (
	// 4 kHz passband
	Narrowband = Bandwidth(C.OPUS_BANDWIDTH_NARROWBAND)
	// 6 kHz passband
	Mediumband = Bandwidth(C.OPUS_BANDWIDTH_MEDIUMBAND)
	// 8 kHz passband
	Wideband = Bandwidth(C.OPUS_BANDWIDTH_WIDEBAND)
	// 12 kHz passband
	SuperWideband = Bandwidth(C.OPUS_BANDWIDTH_SUPERWIDEBAND)
	// 20 kHz passband
	Fullband = Bandwidth(C.OPUS_BANDWIDTH_FULLBAND)
)

func (b Bandwidth) valid() bool {
	switch b {
	case Narrowband, Mediumband, Wideband, SuperWideband, Fullband:
		return true
	}
	return false
}

// ForceChannels pins the encoder to mono or stereo regardless of input.
type ForceChannels int

const (
	ChannelsAuto   = ForceChannels(C.OPUS_AUTO)
	ChannelsMono   = ForceChannels(1)
	ChannelsStereo = ForceChannels(2)
)

func (f ForceChannels) valid() bool {
	switch f {
	case ChannelsAuto, ChannelsMono, ChannelsStereo:
		return true
	}
	return false
}

// SetVBR switches variable bitrate coding.
func (enc *Encoder) SetVBR(vbr bool) error { return enc.ctlSetBool(ctlVBR, vbr) }

// VBR reports whether variable bitrate coding is enabled.
func (enc *Encoder) VBR() (bool, error) { return enc.ctlGetBool(ctlVBR) }

// SetMaxBandwidth sets the upper limit of the bandpass.
func (enc *Encoder) SetMaxBandwidth(b Bandwidth) error {
	if !b.valid() {
		return fmt.Errorf("%w: unknown bandwidth %d", ErrInvalidArgument, int(b))
	}
	return enc.ctlSet(ctlMaxBandwidth, int32(b))
}

// MaxBandwidth returns the configured bandpass limit.
func (enc *Encoder) MaxBandwidth() (Bandwidth, error) {
	v, err := enc.ctlGet(ctlMaxBandwidth)
	return Bandwidth(v), err
}

// SetComplexity sets the computational complexity, 0 (lowest) to 10.
func (enc *Encoder) SetComplexity(complexity int) error {
	if complexity < 0 || complexity > 10 {
		return fmt.Errorf("%w: complexity must be in [0, 10], got %d", ErrInvalidArgument, complexity)
	}
	return enc.ctlSet(ctlComplexity, int32(complexity))
}

// Complexity returns the configured computational complexity.
func (enc *Encoder) Complexity() (int, error) {
	v, err := enc.ctlGet(ctlComplexity)
	return int(v), err
}

// SetInBandFEC switches in-band forward error correction.
func (enc *Encoder) SetInBandFEC(fec bool) error { return enc.ctlSetBool(ctlInBandFEC, fec) }

// InBandFEC reports whether in-band forward error correction is enabled.
func (enc *Encoder) InBandFEC() (bool, error) { return enc.ctlGetBool(ctlInBandFEC) }

// SetPacketLossPerc sets the expected packet loss percentage, 0 to 100.
func (enc *Encoder) SetPacketLossPerc(perc int) error {
	if perc < 0 || perc > 100 {
		return fmt.Errorf("%w: packet loss percentage must be in [0, 100], got %d", ErrInvalidArgument, perc)
	}
	return enc.ctlSet(ctlPacketLossPerc, int32(perc))
}

// PacketLossPerc returns the expected packet loss percentage.
func (enc *Encoder) PacketLossPerc() (int, error) {
	v, err := enc.ctlGet(ctlPacketLossPerc)
	return int(v), err
}

// SetForceChannels pins the coded channel count.
func (enc *Encoder) SetForceChannels(f ForceChannels) error {
	if !f.valid() {
		return fmt.Errorf("%w: unknown forced channel mode %d", ErrInvalidArgument, int(f))
	}
	return enc.ctlSet(ctlForceChannels, int32(f))
}

// ForcedChannels returns the forced channel mode.
func (enc *Encoder) ForcedChannels() (ForceChannels, error) {
	v, err := enc.ctlGet(ctlForceChannels)
	return ForceChannels(v), err
}

// SetDTX switches discontinuous transmission.
func (enc *Encoder) SetDTX(dtx bool) error { return enc.ctlSetBool(ctlDTX, dtx) }

// DTX reports whether discontinuous transmission is enabled.
func (enc *Encoder) DTX() (bool, error) { return enc.ctlGetBool(ctlDTX) }

// Reset returns the native state to a freshly initialized one without
// touching the configured tunables.
func (enc *Encoder) Reset() error {
	if enc.h.closed() {
		return ErrClosed
	}
	res := C.bridge_encoder_reset((*C.OpusEncoder)(enc.h.ptr))
	runtime.KeepAlive(enc.h)
	return unwrap(res)
}

func (dec *Decoder) ctlGet(req ctlReq) (int32, error) {
	if dec.h.closed() {
		return 0, ErrClosed
	}
	var value C.opus_int32
	res := C.bridge_decoder_ctl_get((*C.OpusDecoder)(dec.h.ptr), req.get, &value)
	runtime.KeepAlive(dec.h)
	return int32(value), unwrap(res)
}
