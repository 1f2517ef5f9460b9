package live

import (
	"encoding/base64"
	"encoding/binary"
)

// Wire sample rates. Capture goes up at 16kHz, synthesized speech comes back
// at 24kHz.
const (
	InputSampleRate  = 16000
	OutputSampleRate = 24000
)

// Float32ToInt16LE converts normalized [-1,1] samples to 16-bit little-endian
// PCM, clipping out-of-range values.
func Float32ToInt16LE(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

// Int16LEToFloat32 converts 16-bit little-endian PCM back to normalized
// samples. A trailing odd byte is dropped.
func Int16LEToFloat32(pcm []byte) []float32 {
	n := len(pcm) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		out[i] = float32(v) / 32768
	}
	return out
}

// EncodeChunk base64-encodes a capture frame for the realtime input message.
func EncodeChunk(samples []float32) string {
	return base64.StdEncoding.EncodeToString(Float32ToInt16LE(samples))
}

// DecodeChunk decodes an inline base64 audio payload to normalized samples.
func DecodeChunk(data string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	return Int16LEToFloat32(raw), nil
}
