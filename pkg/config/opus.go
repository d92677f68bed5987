package config

import (
	"fmt"

	"github.com/voicekit/opus/pkg/opus"
)

// Opus holds one codec session's settings.
type Opus struct {
	Hz         int     `fig:"hz" default:"48000"`
	Ch         int     `fig:"ch" default:"2"`
	FrameMs    float64 `fig:"frame_ms" default:"20"`
	Bitrate    int     `fig:"bitrate" default:"128000"`
	Complexity int     `fig:"complexity" default:"10"`
	FEC        bool    `fig:"fec"`
	LossPerc   int     `fig:"loss_perc"`
	DTX        bool    `fig:"dtx"`
}

func DefaultOpusCfg() Opus {
	return Opus{
		Hz:         48000,
		Ch:         2,
		FrameMs:    20,
		Bitrate:    128000,
		Complexity: 10,
	}
}

// Validate checks the settings against the codec's legal sets so a bad
// config fails before any session is created.
func (o Opus) Validate() error {
	ok := false
	for _, hz := range opus.SampleRates {
		if o.Hz == hz {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("opus config: unsupported sample rate %d", o.Hz)
	}
	if o.Ch != 1 && o.Ch != 2 {
		return fmt.Errorf("opus config: channels must be 1 or 2, got %d", o.Ch)
	}
	if !opus.FrameDuration(o.FrameMs).Valid() {
		return fmt.Errorf("opus config: illegal frame duration %gms", o.FrameMs)
	}
	if o.Bitrate < opus.MinBitrate || o.Bitrate > opus.MaxBitrate {
		return fmt.Errorf("opus config: bitrate %d out of [%d, %d]", o.Bitrate, opus.MinBitrate, opus.MaxBitrate)
	}
	if o.Complexity < 0 || o.Complexity > 10 {
		return fmt.Errorf("opus config: complexity %d out of [0, 10]", o.Complexity)
	}
	if o.LossPerc < 0 || o.LossPerc > 100 {
		return fmt.Errorf("opus config: loss percentage %d out of [0, 100]", o.LossPerc)
	}
	return nil
}

// NewEncoder builds an encoding session from the settings.
func (o Opus) NewEncoder(app opus.Application) (*opus.Encoder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	enc, err := opus.NewEncoder(o.Hz, o.Ch, app)
	if err != nil {
		return nil, err
	}
	for _, step := range []error{
		enc.SetBitrate(o.Bitrate),
		enc.SetComplexity(o.Complexity),
		enc.SetInBandFEC(o.FEC),
		enc.SetPacketLossPerc(o.LossPerc),
		enc.SetDTX(o.DTX),
	} {
		if step != nil {
			enc.Close()
			return nil, step
		}
	}
	return enc, nil
}
