package audit

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint calculates a stable, non-reversible identifier for an issued
// token. Audit entries and the token store only ever carry the fingerprint,
// never the token itself.
func Fingerprint(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}
