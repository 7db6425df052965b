package models

import "time"

// TempVisitorLink adalah token sekali pakai untuk akses form pengunjung.
// Used berubah jadi true tepat satu kali, saat form berhasil disubmit.
type TempVisitorLink struct {
	ID        string
	UUID      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func (l TempVisitorLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
