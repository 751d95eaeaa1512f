package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code := NewVerificationCode()
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q has non-digit", code)
		}
		seen[code] = true
	}
	// 20 draws from a million values should not all collide.
	assert.Greater(t, len(seen), 1)
}

func TestSendVerificationCode(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	type mail struct{ to, subject, body string }
	got := make(chan mail, 1)
	sendMail = func(to, subject, body string) error {
		got <- mail{to, subject, body}
		return nil
	}

	SendVerificationCode("pat@carelink.example", "123456")

	select {
	case m := <-got:
		assert.Equal(t, "pat@carelink.example", m.to)
		assert.Equal(t, "Verification Code", m.subject)
		assert.Contains(t, m.body, "123456")
	case <-time.After(2 * time.Second):
		t.Fatal("verification mail was never sent")
	}
}
