package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("SMTP_PORT", "")

	c := Load()
	assert.Equal(t, "6000", c.Port)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "carelink", c.DBName)
	assert.Equal(t, 587, c.SMTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_NAME", "carelink_test")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("EMAIL", "noreply@carelink.example")
	t.Setenv("MAIL_FROM", "")

	c := Load()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "carelink_test", c.DBName)
	assert.Equal(t, 2525, c.SMTPPort)
	assert.Equal(t, "noreply@carelink.example", c.MailFrom)
}

func TestLoadBadSMTPPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	assert.Equal(t, 587, Load().SMTPPort)
}

func TestGetLoadsOnce(t *testing.T) {
	t.Setenv("PORT", "7001")
	Load()
	t.Setenv("PORT", "7002")
	assert.Equal(t, "7001", Get().Port)
}
