package audio

import (
	"embed"
	"io/fs"
)

// Built-in notification sounds. SoundKeypress doubles as the generic
// fallback asset when a requested sound is missing or failed to load.
const (
	SoundKeypress = "assets/keypress.wav"
	SoundAck      = "assets/ack.wav"
	SoundBusy     = "assets/busy.wav"
	SoundFail     = "assets/fail.wav"
)

//go:embed assets/*.wav
var assetFS embed.FS

// Assets returns the embedded sound asset filesystem.
func Assets() fs.FS { return assetFS }

// Manifest returns the fixed set of asset paths preloaded at startup.
func Manifest() []string {
	return []string{SoundKeypress, SoundAck, SoundBusy, SoundFail}
}
