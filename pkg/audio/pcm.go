package audio

import "encoding/binary"

// BytesToPCM converts little-endian s16le bytes to interleaved samples.
// A trailing odd byte is dropped.
func BytesToPCM(b []byte) []int16 {
	pcm := make([]int16, len(b)/2)
	for i := range pcm {
		pcm[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return pcm
}

// PCMToBytes converts interleaved samples to little-endian s16le bytes.
func PCMToBytes(pcm []int16) []byte {
	b := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}
	return b
}
