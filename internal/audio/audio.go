// Package audio provides the small amount of audio-format plumbing the
// service needs: sniffing uploaded reference clips and wrapping raw PCM
// from local engines into a WAV container.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// ErrUnknownFormat indicates data that is neither a WAV file nor a decodable MP3.
var ErrUnknownFormat = errors.New("audio data is neither WAV nor MP3")

const wavHeaderSize = 44

// IsWAV reports whether the data starts with a RIFF/WAVE header.
func IsWAV(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WAVE"))
}

// IsMP3 reports whether the data decodes as an MP3 stream.
func IsMP3(data []byte) bool {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return false
	}
	// NewDecoder only reads the first frame header; decode a little to be sure.
	buf := make([]byte, 4096)
	_, err = dec.Read(buf)
	return err == nil || err == io.EOF
}

// SniffExt returns the file extension for the detected format.
func SniffExt(data []byte) (string, error) {
	switch {
	case IsWAV(data):
		return ".wav", nil
	case IsMP3(data):
		return ".mp3", nil
	default:
		return "", ErrUnknownFormat
	}
}

// WrapPCM wraps raw little-endian PCM samples in a WAV container.
func WrapPCM(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf := make([]byte, 0, wavHeaderSize+len(pcm))
	w := bytes.NewBuffer(buf)

	w.WriteString("RIFF")
	binary.Write(w, binary.LittleEndian, uint32(36+len(pcm)))
	w.WriteString("WAVE")

	w.WriteString("fmt ")
	binary.Write(w, binary.LittleEndian, uint32(16))
	binary.Write(w, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(w, binary.LittleEndian, uint16(channels))
	binary.Write(w, binary.LittleEndian, uint32(sampleRate))
	binary.Write(w, binary.LittleEndian, uint32(byteRate))
	binary.Write(w, binary.LittleEndian, uint16(blockAlign))
	binary.Write(w, binary.LittleEndian, uint16(bitsPerSample))

	w.WriteString("data")
	binary.Write(w, binary.LittleEndian, uint32(len(pcm)))
	w.Write(pcm)

	return w.Bytes()
}
