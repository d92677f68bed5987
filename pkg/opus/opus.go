package opus

/*
#cgo pkg-config: opus

#include <opus.h>
*/
import "C"
import "fmt"

// SampleRates lists the sampling rates the codec accepts, in Hz.
var SampleRates = []int{8000, 12000, 16000, 24000, 48000}

func checkSampleRate(hz int) error {
	switch hz {
	case 8000, 12000, 16000, 24000, 48000:
		return nil
	}
	return fmt.Errorf("%w: sample rate must be one of 8000, 12000, 16000, 24000 or 48000 Hz, got %d", ErrInvalidArgument, hz)
}

func checkChannels(ch int) error {
	if ch != 1 && ch != 2 {
		return fmt.Errorf("%w: number of channels must be 1 or 2, got %d", ErrInvalidArgument, ch)
	}
	return nil
}

// Version returns the version string of the linked libopus.
func Version() string { return C.GoString(C.opus_get_version_string()) }
