package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	DiscordClientID               string        `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret           string        `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURL            string        `mapstructure:"DISCORD_REDIRECT_URL"`
	DiscordGuildID                string        `mapstructure:"DISCORD_GUILD_ID"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	DiscordEditorRoleID           string        `mapstructure:"DISCORD_EDITOR_ROLE_ID"`
	JWTSecret                     string        `mapstructure:"JWT_SECRET"`
	FrontendURL                   string        `mapstructure:"FRONTEND_URL"`
	SMSFunctionURL                string        `mapstructure:"SMS_FUNCTION_URL"`
	SMSAPIKey                     string        `mapstructure:"SMS_API_KEY"`
	SMSTimeout                    time.Duration `mapstructure:"SMS_TIMEOUT"`
	StrictCapacity                bool          `mapstructure:"STRICT_CAPACITY"`
	Timezone                      string        `mapstructure:"TIMEZONE"`
	ReminderInterval              time.Duration `mapstructure:"REMINDER_INTERVAL"`
	LogLevel                      string        `mapstructure:"LOG_LEVEL"`
	LogDevelopment                bool          `mapstructure:"LOG_DEVELOPMENT"`
}

func LoadConfig() *Config {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "pulse.db")
	v.SetDefault("DISCORD_CLIENT_ID", "")
	v.SetDefault("DISCORD_CLIENT_SECRET", "")
	v.SetDefault("DISCORD_REDIRECT_URL", "http://127.0.0.1:8080/auth/discord/callback")
	v.SetDefault("DISCORD_GUILD_ID", "")
	v.SetDefault("DISCORD_BOT_TOKEN", "")
	v.SetDefault("DISCORD_NOTIFICATIONS_CHANNEL_ID", "")
	v.SetDefault("DISCORD_EDITOR_ROLE_ID", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000/home")
	v.SetDefault("SMS_FUNCTION_URL", "")
	v.SetDefault("SMS_API_KEY", "")
	v.SetDefault("SMS_TIMEOUT", 10*time.Second)
	v.SetDefault("STRICT_CAPACITY", false)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("REMINDER_INTERVAL", time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// Location is the zone used to decide which events happen "today".
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
