package commands

import (
	"os"
	"runtime"
)

var emojiSupport = true

// EmojiEnabled can be set to false to never print emojis
var EmojiEnabled = true

func init() {
	// no emojis in CI logs
	if os.Getenv("CI") != "" {
		emojiSupport = false
		return
	}
	// everything that is not windows usually has emoji support
	if runtime.GOOS != "windows" {
		return
	}

	// the windows terminal does not set this, but raw cmd or powershell do
	if os.Getenv("SESSIONNAME") != "" {
		emojiSupport = false
	}
}

// Emoji returns the given string (usually a emoji) if the current terminal
// (probably) supports it
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
