package signer

// Signer interface for signing rendered artifacts
type Signer interface {
	// SignDetached creates an armored detached signature
	// (for SHA256SUMS.asc)
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key in armored format
	GetPublicKey() ([]byte, error)
}
