package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const systemConfigPath = "/etc/opskit.toml"

// serveConfig holds the [serve] section
type serveConfig struct {
	Addr       string
	AuthToken  string
	RunTimeout time.Duration
}

// mailConfig holds the [mail] section
type mailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type appConfig struct {
	Serve serveConfig
	Mail  mailConfig
}

// fileConfig mirrors the TOML layout before defaults are applied
type fileConfig struct {
	Serve struct {
		Addr       string `toml:"addr"`
		AuthToken  string `toml:"auth_token"`
		RunTimeout string `toml:"run_timeout"`
	} `toml:"serve"`
	Mail struct {
		Host     string `toml:"host"`
		Port     int    `toml:"port"`
		Username string `toml:"username"`
		Password string `toml:"password"`
		From     string `toml:"from"`
	} `toml:"mail"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Serve: serveConfig{
			Addr:       ":8080",
			RunTimeout: 30 * time.Minute,
		},
		Mail: mailConfig{
			Port: 587,
		},
	}
}

// defaultConfigPath prefers a config in the working directory over the
// system-wide one
func defaultConfigPath() string {
	if _, err := os.Stat("opskit.toml"); err == nil {
		return "opskit.toml"
	}
	return systemConfigPath
}

// loadConfig reads the TOML config, keeping defaults for anything the
// file does not define. A missing file yields pure defaults.
func loadConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("serve", "addr") {
		cfg.Serve.Addr = strings.TrimSpace(raw.Serve.Addr)
	}
	if meta.IsDefined("serve", "auth_token") {
		cfg.Serve.AuthToken = strings.TrimSpace(raw.Serve.AuthToken)
	}
	if meta.IsDefined("serve", "run_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Serve.RunTimeout))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse serve.run_timeout: %w", err)
		}
		cfg.Serve.RunTimeout = d
	}

	if meta.IsDefined("mail", "host") {
		cfg.Mail.Host = strings.TrimSpace(raw.Mail.Host)
	}
	if meta.IsDefined("mail", "port") {
		cfg.Mail.Port = raw.Mail.Port
	}
	if meta.IsDefined("mail", "username") {
		cfg.Mail.Username = raw.Mail.Username
	}
	if meta.IsDefined("mail", "password") {
		cfg.Mail.Password = raw.Mail.Password
	}
	if meta.IsDefined("mail", "from") {
		cfg.Mail.From = strings.TrimSpace(raw.Mail.From)
	}

	return cfg, nil
}
