package sol

import (
	"crypto/sha256"
	"fmt"
)

// AnchorDiscriminator returns the 8-byte Anchor discriminator for name in
// namespace ("global" for instructions, "account" for account types).
func AnchorDiscriminator(namespace, name string) [8]byte {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", namespace, name)))
	var disc [8]byte
	copy(disc[:], hash[:8])
	return disc
}
