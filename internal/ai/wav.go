package ai

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
)

const wavHeaderSize = 44

// WAVDataURIPrefix prefixes every audio data URI this service produces.
const WAVDataURIPrefix = "data:audio/wav;base64,"

// EncodeWAV wraps PCM samples in a canonical 44-byte RIFF/WAVE header.
func EncodeWAV(s *Speech) ([]byte, error) {
	if s == nil || len(s.PCM) == 0 {
		return nil, errors.New("no audio samples")
	}
	if s.Channels <= 0 || s.SampleRate <= 0 || s.BitDepth <= 0 || s.BitDepth%8 != 0 {
		return nil, errors.New("invalid audio format")
	}

	blockAlign := s.Channels * s.BitDepth / 8
	byteRate := s.SampleRate * blockAlign
	dataLen := len(s.PCM)

	buf := make([]byte, wavHeaderSize+dataLen)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(s.Channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(s.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(s.BitDepth))
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))
	copy(buf[wavHeaderSize:], s.PCM)
	return buf, nil
}

// WAVDataURI base64-encodes a WAV file as a data URI.
func WAVDataURI(wav []byte) string {
	return WAVDataURIPrefix + base64.StdEncoding.EncodeToString(wav)
}
