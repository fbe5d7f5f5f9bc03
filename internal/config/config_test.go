package config

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := LoadConfig()

		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.SMSTimeout != 10*time.Second {
			t.Errorf("expected 10s sms timeout, got %v", cfg.SMSTimeout)
		}
		if cfg.StrictCapacity {
			t.Error("expected strict capacity to be off by default")
		}
		if cfg.Location() != time.UTC {
			t.Errorf("expected UTC location, got %v", cfg.Location())
		}
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("STRICT_CAPACITY", "true")
		t.Setenv("REMINDER_INTERVAL", "15m")
		t.Setenv("TIMEZONE", "Asia/Kolkata")

		cfg := LoadConfig()

		if cfg.Port != "9090" {
			t.Errorf("expected port 9090, got %s", cfg.Port)
		}
		if !cfg.StrictCapacity {
			t.Error("expected strict capacity to be on")
		}
		if cfg.ReminderInterval != 15*time.Minute {
			t.Errorf("expected 15m reminder interval, got %v", cfg.ReminderInterval)
		}
		if cfg.Location().String() != "Asia/Kolkata" {
			t.Errorf("expected Asia/Kolkata, got %s", cfg.Location())
		}
	})

	t.Run("UnknownTimezone", func(t *testing.T) {
		cfg := &Config{Timezone: "Nowhere/Special"}
		if cfg.Location() != time.UTC {
			t.Errorf("expected fallback to UTC, got %v", cfg.Location())
		}
	})
}
