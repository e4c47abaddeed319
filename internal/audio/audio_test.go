package audio_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceforge/internal/audio"
)

func TestWrapPCM_HeaderFields(t *testing.T) {
	pcm := make([]byte, 1000)
	wav := audio.WrapPCM(pcm, 22050, 1, 16)

	require.Len(t, wav, 44+len(pcm))
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, "data", string(wav[36:40]))

	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]), "channels")
	assert.Equal(t, uint32(22050), binary.LittleEndian.Uint32(wav[24:28]), "sample rate")
	assert.Equal(t, uint32(22050*2), binary.LittleEndian.Uint32(wav[28:32]), "byte rate")
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]), "bits per sample")
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]), "data length")
}

func TestIsWAV(t *testing.T) {
	wav := audio.WrapPCM(make([]byte, 16), 16000, 1, 16)
	assert.True(t, audio.IsWAV(wav))

	assert.False(t, audio.IsWAV([]byte("not audio at all")))
	assert.False(t, audio.IsWAV(nil))
	assert.False(t, audio.IsWAV([]byte("RIFF")))
}

func TestIsMP3_RejectsGarbage(t *testing.T) {
	assert.False(t, audio.IsMP3([]byte("definitely not an mp3 stream")))
	assert.False(t, audio.IsMP3(nil))
}

func TestSniffExt(t *testing.T) {
	wav := audio.WrapPCM(make([]byte, 16), 16000, 1, 16)

	ext, err := audio.SniffExt(wav)
	require.NoError(t, err)
	assert.Equal(t, ".wav", ext)

	_, err = audio.SniffExt([]byte("garbage"))
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)
}
