package notify

import (
	"fmt"
	"time"

	"github.com/pandu2406/pst-1504/internal/models"
)

// FormatQueueDate format tanggal antrean jadi DDMM, dipakai di label nomor.
func FormatQueueDate(t time.Time) string {
	return fmt.Sprintf("%02d%02d", t.Day(), int(t.Month()))
}

func queueTypeLabel(qt models.QueueType) string {
	if qt == models.QueueTypeOnline {
		return "Online"
	}
	return "Offline"
}

// queueLabel: "#12-0309 (Offline)"
func queueLabel(number int, createdAt time.Time, qt models.QueueType) string {
	return fmt.Sprintf("#%d-%s (%s)", number, FormatQueueDate(createdAt), queueTypeLabel(qt))
}

func NewQueueMessage(number int, createdAt time.Time, qt models.QueueType, visitorName, serviceName string) string {
	return fmt.Sprintf("Antrean baru %s dari %s untuk layanan %s",
		queueLabel(number, createdAt, qt), visitorName, serviceName)
}

func ServingMessage(number int, createdAt time.Time, qt models.QueueType, adminName string) string {
	return fmt.Sprintf("Antrean %s sedang dilayani oleh %s",
		queueLabel(number, createdAt, qt), adminName)
}

func CompletedMessage(number int, createdAt time.Time, qt models.QueueType, serviceName string) string {
	return fmt.Sprintf("Antrean %s telah selesai dilayani untuk %s",
		queueLabel(number, createdAt, qt), serviceName)
}

func CanceledMessage(number int, createdAt time.Time, qt models.QueueType, serviceName string) string {
	return fmt.Sprintf("Antrean %s untuk layanan %s telah dibatalkan",
		queueLabel(number, createdAt, qt), serviceName)
}

const (
	TitleNewQueue  = "Antrean Baru"
	TitleServing   = "Antrean Sedang Dilayani"
	TitleCompleted = "Antrean Selesai"
	TitleCanceled  = "Antrean Dibatalkan"
)
