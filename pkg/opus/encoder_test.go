package opus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder(48000, 2, AppVoIP)
	require.NoError(t, err)
	t.Cleanup(func() { enc.Close() })
	return enc
}

func TestNewEncoderRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name     string
		rate, ch int
		app      Application
	}{
		{"sample rate", 44100, 2, AppVoIP},
		{"zero channels", 48000, 0, AppVoIP},
		{"too many channels", 48000, 3, AppVoIP},
		{"unknown profile", 48000, 2, Application(42)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := NewEncoder(tc.rate, tc.ch, tc.app)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
			assert.Nil(t, enc)
		})
	}
}

func TestEncodeRejectsPartialFrames(t *testing.T) {
	enc := newTestEncoder(t)
	for _, n := range []int{2, 96, 1919, Frame20ms.SampleCount(48000)*2 - 2, Frame60ms.SampleCount(48000)*2 + 2} {
		_, err := enc.Encode(make([]int16, n))
		require.Error(t, err, "length %d", n)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
	_, err := enc.Encode(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestEncodeWholeFrames(t *testing.T) {
	enc := newTestEncoder(t)
	for _, d := range frameDurations {
		pcm := make([]int16, d.SampleCount(48000)*2)
		data, err := enc.Encode(pcm)
		require.NoError(t, err, "%v ms", d.Millis())
		assert.NotEmpty(t, data)
		assert.LessOrEqual(t, len(data), cap(data))
	}
}

func TestEncoderBitrateIsLocal(t *testing.T) {
	enc := newTestEncoder(t)

	b, err := enc.Bitrate()
	require.NoError(t, err)
	assert.Equal(t, DefaultBitrate, b)

	require.NoError(t, enc.SetBitrate(96000))
	b, err = enc.Bitrate()
	require.NoError(t, err)
	assert.Equal(t, 96000, b)

	// The allocation follows the target rate: 20ms at 96kbps is 240 bytes.
	pcm := make([]int16, Frame20ms.SampleCount(48000)*2)
	data, err := enc.Encode(pcm)
	require.NoError(t, err)
	assert.Equal(t, 240, cap(data))
	assert.LessOrEqual(t, len(data), 240)
}

func TestEncoderTunableDomains(t *testing.T) {
	enc := newTestEncoder(t)
	tests := []struct {
		name string
		call func() error
	}{
		{"complexity 11", func() error { return enc.SetComplexity(11) }},
		{"complexity -1", func() error { return enc.SetComplexity(-1) }},
		{"bitrate 600000", func() error { return enc.SetBitrate(600000) }},
		{"bitrate 7999", func() error { return enc.SetBitrate(7999) }},
		{"loss 101", func() error { return enc.SetPacketLossPerc(101) }},
		{"loss -1", func() error { return enc.SetPacketLossPerc(-1) }},
		{"bandwidth 1", func() error { return enc.SetMaxBandwidth(Bandwidth(1)) }},
		{"force channels 3", func() error { return enc.SetForceChannels(ForceChannels(3)) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestEncoderTunablesForwarded(t *testing.T) {
	enc := newTestEncoder(t)

	require.NoError(t, enc.SetComplexity(5))
	c, err := enc.Complexity()
	require.NoError(t, err)
	assert.Equal(t, 5, c)

	require.NoError(t, enc.SetVBR(false))
	vbr, err := enc.VBR()
	require.NoError(t, err)
	assert.False(t, vbr)

	require.NoError(t, enc.SetMaxBandwidth(Wideband))
	bw, err := enc.MaxBandwidth()
	require.NoError(t, err)
	assert.Equal(t, Wideband, bw)

	require.NoError(t, enc.SetInBandFEC(true))
	fec, err := enc.InBandFEC()
	require.NoError(t, err)
	assert.True(t, fec)

	require.NoError(t, enc.SetPacketLossPerc(30))
	loss, err := enc.PacketLossPerc()
	require.NoError(t, err)
	assert.Equal(t, 30, loss)

	require.NoError(t, enc.SetForceChannels(ChannelsMono))
	f, err := enc.ForcedChannels()
	require.NoError(t, err)
	assert.Equal(t, ChannelsMono, f)

	require.NoError(t, enc.SetDTX(true))
	dtx, err := enc.DTX()
	require.NoError(t, err)
	assert.True(t, dtx)
}

func TestEncoderClose(t *testing.T) {
	enc, err := NewEncoder(48000, 2, AppAudio)
	require.NoError(t, err)
	assert.False(t, enc.IsClosed())

	require.NoError(t, enc.Close())
	assert.True(t, enc.IsClosed())
	require.NoError(t, enc.Close()) // no double free

	_, err = enc.Encode(make([]int16, Frame20ms.SampleCount(48000)*2))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, enc.SetComplexity(5), ErrClosed)
	_, err = enc.Complexity()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, enc.SetBitrate(64000), ErrClosed)
	_, err = enc.Bitrate()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, enc.Reset(), ErrClosed)
}
