package translator

import (
	"strings"

	"github.com/google/uuid"
)

// hex32 returns a 32-character hex string, the dash-stripped form of a v4
// UUID, matching the "32 random hex" response ids §4.6 requires.
func hex32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func chatCompletionID() string {
	return "chatcmpl-" + hex32()
}

func toolCallID() string {
	return "call_" + hex32()
}
