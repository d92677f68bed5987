package opus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecoderRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name     string
		rate, ch int
	}{
		{"sample rate", 22050, 2},
		{"zero channels", 48000, 0},
		{"too many channels", 48000, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dec, err := NewDecoder(tc.rate, tc.ch)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
			assert.Nil(t, dec)
		})
	}
}

func TestDecodeRejectsBadBuffers(t *testing.T) {
	dec, err := NewDecoder(48000, 2)
	require.NoError(t, err)
	defer dec.Close()

	_, err = dec.Decode(nil, make([]int16, Frame20ms.SampleCount(48000)*2))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = dec.Decode([]byte{0xfc, 0xff, 0xfe}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = dec.Decode([]byte{0xfc, 0xff, 0xfe}, make([]int16, 33))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDecodePLCNeedsWholeFrame(t *testing.T) {
	dec, err := NewDecoder(48000, 2)
	require.NoError(t, err)
	defer dec.Close()

	// 7ms worth of samples is not a legal frame.
	_, err = dec.DecodePLC(make([]int16, 7*48*2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = dec.DecodePLC(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDecodePLCSynthesizesFrame(t *testing.T) {
	enc := newTestEncoder(t)
	dec, err := NewDecoder(48000, 2)
	require.NoError(t, err)
	defer dec.Close()

	// Prime the decoder with a real packet first.
	frame := make([]int16, Frame20ms.SampleCount(48000)*2)
	data, err := enc.Encode(frame)
	require.NoError(t, err)
	_, err = dec.Decode(data, make([]int16, len(frame)))
	require.NoError(t, err)

	pcm := make([]int16, Frame20ms.SampleCount(48000)*2)
	n, err := dec.DecodePLC(pcm)
	require.NoError(t, err)
	assert.Equal(t, Frame20ms.SampleCount(48000), n)

	samples, err := dec.LastPacketDuration()
	require.NoError(t, err)
	assert.Equal(t, n, samples)
}

func TestDecoderClose(t *testing.T) {
	dec, err := NewDecoder(16000, 1)
	require.NoError(t, err)
	assert.False(t, dec.IsClosed())

	require.NoError(t, dec.Close())
	assert.True(t, dec.IsClosed())
	require.NoError(t, dec.Close()) // no double free

	_, err = dec.Decode([]byte{0xfc}, make([]int16, Frame20ms.SampleCount(16000)))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = dec.DecodePLC(make([]int16, Frame20ms.SampleCount(16000)))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = dec.LastPacketDuration()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFrameDecoder(t *testing.T) {
	_, err := NewFrameDecoder(48000, 2, FrameDuration(7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	enc := newTestEncoder(t)
	require.NoError(t, enc.SetInBandFEC(true))
	require.NoError(t, enc.SetPacketLossPerc(20))

	dec, err := NewFrameDecoder(48000, 2, Frame20ms)
	require.NoError(t, err)
	defer dec.Close()
	assert.Equal(t, Frame20ms, dec.FrameDuration())

	frame := make([]int16, Frame20ms.SampleCount(48000)*2)
	first, err := enc.Encode(frame)
	require.NoError(t, err)
	second, err := enc.Encode(frame)
	require.NoError(t, err)

	pcm, err := dec.Decode(first)
	require.NoError(t, err)
	assert.Len(t, pcm, len(frame))

	// Pretend the packet between first and second was lost.
	pcm, err = dec.DecodeFEC(second)
	require.NoError(t, err)
	assert.Len(t, pcm, len(frame))

	pcm, err = dec.Conceal()
	require.NoError(t, err)
	assert.Len(t, pcm, len(frame))

	require.NoError(t, dec.Close())
	require.NoError(t, dec.Close())
	assert.True(t, dec.IsClosed())
	_, err = dec.Decode(first)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = dec.DecodeFEC(second)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = dec.Conceal()
	assert.ErrorIs(t, err, ErrClosed)
}
