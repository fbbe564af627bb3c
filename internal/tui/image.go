package tui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// ImageProtocol is the inline image protocol a terminal understands.
type ImageProtocol int

const (
	ProtocolNone ImageProtocol = iota
	ProtocolKitty
	ProtocolITerm2
)

// DetectImageProtocol inspects TERM and TERM_PROGRAM. Ghostty speaks the
// Kitty protocol.
func DetectImageProtocol() ImageProtocol {
	switch {
	case strings.Contains(os.Getenv("TERM"), "kitty"), os.Getenv("TERM_PROGRAM") == "ghostty":
		return ProtocolKitty
	case os.Getenv("TERM_PROGRAM") == "iTerm.app":
		return ProtocolITerm2
	default:
		return ProtocolNone
	}
}

// InlineCover returns the escape sequence that draws the cover image at
// path, or "" when the terminal cannot show images or the file is missing.
func InlineCover(path string, p ImageProtocol) string {
	if p == ProtocolNone || path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	switch p {
	case ProtocolKitty:
		// a=T transmit and display, f=100 let the terminal decode the format.
		return fmt.Sprintf("\x1b_Ga=T,f=100,t=d;%s\x1b\\", encoded)
	case ProtocolITerm2:
		return fmt.Sprintf("\x1b]1337;File=inline=1;width=20:%s\x07", encoded)
	}
	return ""
}
