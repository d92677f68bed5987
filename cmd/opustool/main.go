// opustool encodes raw s16le PCM into a length-prefixed Opus packet
// stream and back. The packet stream is a tool detail for piping and
// testing, not a library format: each packet is preceded by its length
// as a big-endian uint16, and a zero length marks a lost packet slot.
package main

import (
	"bufio"
	"encoding/binary"
	goflag "flag"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/voicekit/opus/pkg/audio"
	"github.com/voicekit/opus/pkg/config"
	"github.com/voicekit/opus/pkg/logger"
	"github.com/voicekit/opus/pkg/opus"
)

var Version = "?"

func main() {
	var (
		confPath = flag.String("config", "", "path to a configuration file")
		encPath  = flag.String("encode", "", "raw s16le PCM input to encode, '-' for stdin")
		decPath  = flag.String("decode", "", "packet stream input to decode, '-' for stdin")
		outPath  = flag.StringP("out", "o", "-", "output path, '-' for stdout")
		info     = flag.Bool("info", false, "print codec version and exit")
	)
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	flag.Parse()

	conf := config.NewConfig()
	var confErr error
	if *confPath == "" {
		confErr = config.LoadConfigEnv(&conf)
	} else {
		confErr = config.LoadConfig(&conf, *confPath)
	}

	log := logger.NewConsole(conf.Debug, "opustool")
	if confErr != nil {
		log.Fatal().Err(confErr).Msg("bad configuration")
	}

	switch {
	case *info:
		fmt.Printf("opustool %s, %s\n", Version, opus.Version())
	case *encPath != "":
		if err := encode(conf.Opus, *encPath, *outPath, log); err != nil {
			log.Fatal().Err(err).Msg("encode failed")
		}
	case *decPath != "":
		if err := decode(conf.Opus, *decPath, *outPath, log); err != nil {
			log.Fatal().Err(err).Msg("decode failed")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func encode(conf config.Opus, in, out string, log *logger.Logger) error {
	src, err := openIn(in)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := openOut(out)
	if err != nil {
		return err
	}
	defer dst.Close()

	enc, err := conf.NewEncoder(opus.AppVoIP)
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriter(dst)
	var hdr [2]byte
	w, err := audio.NewWriter(enc, opus.FrameDuration(conf.FrameMs), func(p []byte) error {
		binary.BigEndian.PutUint16(hdr[:], uint16(len(p)))
		if _, err := bw.Write(hdr[:]); err != nil {
			return err
		}
		_, err := bw.Write(p)
		return err
	}, log)
	if err != nil {
		return err
	}

	buf := make([]byte, opus.FrameDuration(conf.FrameMs).Bytes(conf.Hz, conf.Ch))
	total := 0
	for {
		n, err := io.ReadFull(src, buf)
		if n > 0 {
			total += n
			if _, werr := w.Write(audio.BytesToPCM(buf[:n])); werr != nil {
				return werr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Info().Int("pcm_bytes", total).Int("packets", w.Frames()).Msg("encoded")
	return bw.Flush()
}

func decode(conf config.Opus, in, out string, log *logger.Logger) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	src, err := openIn(in)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := openOut(out)
	if err != nil {
		return err
	}
	defer dst.Close()

	dec, err := opus.NewDecoder(conf.Hz, conf.Ch)
	if err != nil {
		return err
	}
	defer dec.Close()

	br := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	// A packet may carry up to 60ms regardless of the configured frame.
	pcm := make([]int16, opus.Frame60ms.SampleCount(conf.Hz)*conf.Ch)
	lost := pcm[:opus.FrameDuration(conf.FrameMs).SampleCount(conf.Hz)*conf.Ch]
	var hdr [2]byte
	packets := 0
	for {
		if _, err := io.ReadFull(br, hdr[:]); err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		size := int(binary.BigEndian.Uint16(hdr[:]))

		var samples int
		if size == 0 {
			// Lost packet slot: conceal one configured frame.
			samples, err = dec.DecodePLC(lost)
		} else {
			pkt := make([]byte, size)
			if _, err := io.ReadFull(br, pkt); err != nil {
				return err
			}
			samples, err = dec.Decode(pkt, pcm)
		}
		if err != nil {
			return err
		}
		if _, err := bw.Write(audio.PCMToBytes(pcm[:samples*conf.Ch])); err != nil {
			return err
		}
		packets++
	}
	log.Info().Int("packets", packets).Msg("decoded")
	return bw.Flush()
}

func openIn(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOut(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
