// Package hashgate membandingkan digest payload supaya client polling
// bisa skip re-render saat data tidak berubah. Murni optimasi bandwidth,
// tidak pernah dipakai untuk otorisasi atau deteksi konflik.
package hashgate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ComputeHash menghasilkan digest SHA-256 (hex) dari serialisasi JSON
// payload. Deterministik: payload identik selalu menghasilkan hash sama.
func ComputeHash(payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// HasChanged true jika client belum mengirim hash atau hash-nya beda
// dengan milik server.
func HasChanged(clientHash, serverHash string) bool {
	return clientHash == "" || clientHash != serverHash
}
