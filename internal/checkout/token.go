package checkout

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// downloadTokenBytes sizes the bearer credential at 256 bits of entropy,
// enough that enumeration or guessing is infeasible.
const downloadTokenBytes = 32

// NewDownloadToken mints an opaque, unguessable download token. The token is
// the only credential gating access to purchased content, so it comes straight
// from the CSPRNG and is encoded URL-safe for use in links.
func NewDownloadToken() (string, error) {
	buf := make([]byte, downloadTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("download token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
