package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"081234567890", "6281234567890"},
		{"+6281234567890", "6281234567890"},
		{"6281234567890", "6281234567890"},
		{"0812 3456 7890", "6281234567890"},
		{"81234567890", "6281234567890"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, NormalizePhone(c.in), "input %q", c.in)
	}
}

func TestWhatsAppDirectLink(t *testing.T) {
	link := WhatsAppDirectLink("081234567890", "Halo Budi")
	assert.Equal(t, "https://wa.me/6281234567890?text=Halo+Budi", link)
}

func TestSendWhatsAppBotMessageNotConfigured(t *testing.T) {
	t.Setenv("WA_API_URL", "")
	t.Setenv("WA_ADMIN_KEY", "")

	err := SendWhatsAppBotMessage("081234567890", "halo")
	assert.ErrorIs(t, err, ErrWhatsAppNotConfigured)
}
