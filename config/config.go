// Package config loads the bot configuration from config.yaml and the
// environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"showdown-bot/model"
)

// Load reads config/config.yaml (path overridable via BOT_CONFIG) and pulls
// the account password from the environment. Missing files fall back to
// defaults; a missing username is fatal to the caller.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Str("module", "config").Msg(".env file not found, relying on environment variables")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	path := os.Getenv("BOT_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}
	v.SetConfigFile(path)

	v.SetDefault("server", "wss://sim3.psim.us/showdown/websocket")
	v.SetDefault("login_server", "https://play.pokemonshowdown.com/action.php")
	v.SetDefault("command_character", ".")
	v.SetDefault("moderation_rank", "%")
	v.SetDefault("exempt_rank", "+")
	v.SetDefault("punish_log_path", "data/punishments.db")
	v.SetDefault("punishment_points", map[string]int{
		"verbalwarn": 1,
		"warn":       2,
		"mute":       3,
		"hourmute":   4,
		"roomban":    5,
	})
	v.SetDefault("punishment_actions", map[string]string{
		"2": "warn",
		"3": "mute",
		"4": "hourmute",
		"5": "roomban",
	})

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("path", path).Msg("config file not found, using defaults")
	}

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Username == "" {
		cfg.Username = os.Getenv("BOT_USERNAME")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("no username configured (set username in %s or BOT_USERNAME)", path)
	}
	cfg.Password = os.Getenv("BOT_PASSWORD")

	return &cfg, nil
}
