package helper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var ErrWhatsAppNotConfigured = errors.New("WA_API_URL / WA_ADMIN_KEY belum diset")

// NormalizePhone konversi nomor lokal ke format internasional Indonesia
// tanpa tanda plus: "0812..." dan "+62812..." sama-sama jadi "62812...".
func NormalizePhone(phone string) string {
	clean := strings.ReplaceAll(phone, " ", "")

	switch {
	case strings.HasPrefix(clean, "+62"):
		return clean[1:]
	case strings.HasPrefix(clean, "0"):
		return "62" + clean[1:]
	case strings.HasPrefix(clean, "62"):
		return clean
	default:
		return "62" + clean
	}
}

// WhatsAppDirectLink bangun link wa.me yang membuka chat berisi pesan.
func WhatsAppDirectLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone), url.QueryEscape(message))
}

type waBotResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason"`
}

// SendWhatsAppBotMessage kirim pesan lewat WhatsApp bot gateway.
// Best effort: pemanggil cukup log error, tidak ada retry.
func SendWhatsAppBotMessage(phone, message string) error {
	apiURL := os.Getenv("WA_API_URL")
	token := os.Getenv("WA_ADMIN_KEY")
	if apiURL == "" || token == "" {
		return ErrWhatsAppNotConfigured
	}

	payload, err := json.Marshal(map[string]string{
		"target":  NormalizePhone(phone),
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result waBotResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	if !result.Status {
		if result.Reason != "" {
			return errors.New(result.Reason)
		}
		return errors.New("gagal mengirim pesan WhatsApp")
	}

	return nil
}
