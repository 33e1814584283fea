package config

import (
	"time"

	"dario.cat/mergo"
)

// defaultConfig holds the values used for every field left zero by all
// configuration sources.
func defaultConfig() StructuredConfig {
	return StructuredConfig{
		App: App{
			TokenDuration:  7 * 24 * time.Hour,
			Version:        "dev",
			LogLevel:       "debug",
			CompanyName:    "TravelTrek",
			MemberLoginURL: "http://localhost:5000/member-login",
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: 25,
				MaxIdleConns: 5,
			},
			Objects: Objects{
				Bucket:    "uploads",
				LocalDir:  "uploads",
				PublicURL: "/uploads",
			},
		},
		Server: Server{
			RequestTimeout: 30 * time.Second,
		},
		Notify: Notify{
			SMTPPort:    587,
			FromName:    "TravelTrek",
			MaxAttempts: 3,
			RetryDelay:  5 * time.Second,
			QueueSize:   256,
		},
		AI: AI{
			Model:   "gemini-2.0-flash",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Timeout: 30 * time.Second,
		},
		Limits: Limits{
			ChatRequests:  10,
			ChatWindow:    time.Minute,
			OTPTTL:        5 * time.Minute,
			SweepInterval: 5 * time.Minute,
			PublicRPS:     5,
			PublicBurst:   10,
		},
	}
}

// applyDefaults fills zero fields of cfg from [defaultConfig].
func (cfg *StructuredConfig) applyDefaults() error {
	defaults := defaultConfig()
	return mergo.Merge(cfg, defaults)
}
