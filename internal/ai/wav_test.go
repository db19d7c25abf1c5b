package ai

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	wav, err := EncodeWAV(&Speech{PCM: pcm, SampleRate: 24000, Channels: 1, BitDepth: 16})
	require.NoError(t, err)
	require.Len(t, wav, 44+len(pcm))

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[32:34]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])
}

func TestEncodeWAVRejectsEmptyAudio(t *testing.T) {
	_, err := EncodeWAV(&Speech{SampleRate: 24000, Channels: 1, BitDepth: 16})
	assert.Error(t, err)

	_, err = EncodeWAV(nil)
	assert.Error(t, err)

	_, err = EncodeWAV(&Speech{PCM: []byte{1}, SampleRate: 24000, Channels: 1, BitDepth: 12})
	assert.Error(t, err)
}

func TestWAVDataURI(t *testing.T) {
	uri := WAVDataURI([]byte("RIFF"))
	require.True(t, strings.HasPrefix(uri, WAVDataURIPrefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, WAVDataURIPrefix))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(decoded))
}

func TestSampleRateFromMIME(t *testing.T) {
	assert.Equal(t, 16000, sampleRateFromMIME("audio/L16;codec=pcm;rate=16000", 24000))
	assert.Equal(t, 24000, sampleRateFromMIME("audio/L16", 24000))
	assert.Equal(t, 24000, sampleRateFromMIME("audio/L16;rate=abc", 24000))
}
