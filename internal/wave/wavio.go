package wave

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// ReadFile decodes a 16-bit PCM WAV file, downmixing to mono when the file
// carries more than one channel.
func ReadFile(path string) (Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return Waveform{}, fmt.Errorf("open wav: %w", err)
	}
	defer file.Close()
	return decode(bufio.NewReader(file))
}

// WriteFile encodes a mono waveform as 16-bit PCM WAV. Samples are clamped
// to [-1, 1] before quantization.
func WriteFile(path string, w Waveform) error {
	if w.Rate <= 0 {
		return fmt.Errorf("write wav: invalid sample rate %d", w.Rate)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer file.Close()

	out := bufio.NewWriter(file)
	if err := encode(out, w); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("flush wav: %w", err)
	}
	return file.Close()
}

func decode(r io.Reader) (Waveform, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Waveform{}, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Waveform{}, fmt.Errorf("not a wav file")
	}

	var (
		rate       int
		channels   int
		bitDepth   int
		haveFormat bool
	)

	// Chunks may appear in any order and carry arbitrary metadata (LIST,
	// fact, ...). Walk until the data chunk.
	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return Waveform{}, fmt.Errorf("wav missing data chunk")
			}
			return Waveform{}, fmt.Errorf("read chunk header: %w", err)
		}
		chunkID := string(header[0:4])
		size := binary.LittleEndian.Uint32(header[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return Waveform{}, fmt.Errorf("read fmt chunk: %w", err)
			}
			if len(body) < 16 {
				return Waveform{}, fmt.Errorf("fmt chunk too short: %d bytes", len(body))
			}
			format := int(binary.LittleEndian.Uint16(body[0:2]))
			if format != formatPCM && format != formatExtensible {
				return Waveform{}, fmt.Errorf("unsupported wav format tag %d", format)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			rate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			if channels < 1 {
				return Waveform{}, fmt.Errorf("invalid channel count %d", channels)
			}
			if bitDepth != 16 {
				return Waveform{}, fmt.Errorf("unsupported bit depth %d, want 16", bitDepth)
			}
			haveFormat = true
			if size%2 == 1 {
				if _, err := io.CopyN(io.Discard, r, 1); err != nil {
					return Waveform{}, fmt.Errorf("skip fmt padding: %w", err)
				}
			}
		case "data":
			if !haveFormat {
				return Waveform{}, fmt.Errorf("wav data chunk before fmt chunk")
			}
			raw := make([]byte, size)
			if _, err := io.ReadFull(r, raw); err != nil {
				return Waveform{}, fmt.Errorf("read data chunk: %w", err)
			}
			count := len(raw) / 2
			interleaved := make([]float64, count)
			for i := 0; i < count; i++ {
				sample := int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
				interleaved[i] = float64(sample) / 32768.0
			}
			return Waveform{Samples: downmix(interleaved, channels), Rate: rate}, nil
		default:
			skip := int64(size)
			if size%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return Waveform{}, fmt.Errorf("skip %s chunk: %w", chunkID, err)
			}
		}
	}
}

func encode(out io.Writer, w Waveform) error {
	dataSize := uint32(len(w.Samples) * 2)

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], 1) // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.Rate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(w.Rate*2)) // byte rate
	binary.LittleEndian.PutUint16(header[32:34], 2)                // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)               // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := out.Write(header[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	buf := make([]byte, 2)
	for _, sample := range w.Samples {
		clamped := math.Max(-1, math.Min(1, sample))
		value := int16(math.Round(clamped * 32767))
		binary.LittleEndian.PutUint16(buf, uint16(value))
		if _, err := out.Write(buf); err != nil {
			return fmt.Errorf("write wav samples: %w", err)
		}
	}
	return nil
}
