package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations accept Go duration strings such as "30s".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		Version        string   `json:"version"`
		CompanyName    string   `json:"company_name"`
		SupportEmail   string   `json:"support_email"`
		SupportPhone   string   `json:"support_phone"`
		MemberLoginURL string   `json:"member_login_url"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
			MaxIdleConns int    `json:"max_idle_conns"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`

		Objects struct {
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Bucket    string `json:"bucket"`
			UseSSL    bool   `json:"use_ssl"`
			PublicURL string `json:"public_url"`
			LocalDir  string `json:"local_dir"`
		} `json:"objects,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Notify struct {
		SMTPHost           string   `json:"smtp_host"`
		SMTPPort           int      `json:"smtp_port"`
		SMTPUser           string   `json:"smtp_user"`
		SMTPPassword       string   `json:"smtp_password"`
		FromEmail          string   `json:"from_email"`
		FromName           string   `json:"from_name"`
		WhatsAppURL        string   `json:"whatsapp_url"`
		WhatsAppAccountSID string   `json:"whatsapp_account_sid"`
		WhatsAppAuthToken  string   `json:"whatsapp_auth_token"`
		WhatsAppFrom       string   `json:"whatsapp_from"`
		PushURL            string   `json:"push_url"`
		PushServerKey      string   `json:"push_server_key"`
		MaxAttempts        int      `json:"max_attempts"`
		RetryDelay         Duration `json:"retry_delay"`
		QueueSize          int      `json:"queue_size"`
	} `json:"notify,omitempty"`

	AI struct {
		APIKey  string   `json:"api_key"`
		Model   string   `json:"model"`
		BaseURL string   `json:"base_url"`
		Timeout Duration `json:"timeout"`
	} `json:"ai,omitempty"`

	Limits struct {
		ChatRequests  int      `json:"chat_requests"`
		ChatWindow    Duration `json:"chat_window"`
		OTPTTL        Duration `json:"otp_ttl"`
		SweepInterval Duration `json:"sweep_interval"`
		PublicRPS     float64  `json:"public_rps"`
		PublicBurst   int      `json:"public_burst"`
	} `json:"limits,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	s := jsonCfg.Storage
	n := jsonCfg.Notify

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			Version:        jsonCfg.App.Version,
			CompanyName:    jsonCfg.App.CompanyName,
			SupportEmail:   jsonCfg.App.SupportEmail,
			SupportPhone:   jsonCfg.App.SupportPhone,
			MemberLoginURL: jsonCfg.App.MemberLoginURL,
		},
		Storage: Storage{
			DB: DB{
				DSN:          s.DB.DSN,
				MaxOpenConns: s.DB.MaxOpenConns,
				MaxIdleConns: s.DB.MaxIdleConns,
			},
			Redis: Redis{
				Address:  s.Redis.Address,
				Password: s.Redis.Password,
				DB:       s.Redis.DB,
			},
			Objects: Objects{
				Endpoint:  s.Objects.Endpoint,
				AccessKey: s.Objects.AccessKey,
				SecretKey: s.Objects.SecretKey,
				Bucket:    s.Objects.Bucket,
				UseSSL:    s.Objects.UseSSL,
				PublicURL: s.Objects.PublicURL,
				LocalDir:  s.Objects.LocalDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Notify: Notify{
			SMTPHost:           n.SMTPHost,
			SMTPPort:           n.SMTPPort,
			SMTPUser:           n.SMTPUser,
			SMTPPassword:       n.SMTPPassword,
			FromEmail:          n.FromEmail,
			FromName:           n.FromName,
			WhatsAppURL:        n.WhatsAppURL,
			WhatsAppAccountSID: n.WhatsAppAccountSID,
			WhatsAppAuthToken:  n.WhatsAppAuthToken,
			WhatsAppFrom:       n.WhatsAppFrom,
			PushURL:            n.PushURL,
			PushServerKey:      n.PushServerKey,
			MaxAttempts:        n.MaxAttempts,
			RetryDelay:         time.Duration(n.RetryDelay),
			QueueSize:          n.QueueSize,
		},
		AI: AI{
			APIKey:  jsonCfg.AI.APIKey,
			Model:   jsonCfg.AI.Model,
			BaseURL: jsonCfg.AI.BaseURL,
			Timeout: time.Duration(jsonCfg.AI.Timeout),
		},
		Limits: Limits{
			ChatRequests:  jsonCfg.Limits.ChatRequests,
			ChatWindow:    time.Duration(jsonCfg.Limits.ChatWindow),
			OTPTTL:        time.Duration(jsonCfg.Limits.OTPTTL),
			SweepInterval: time.Duration(jsonCfg.Limits.SweepInterval),
			PublicRPS:     jsonCfg.Limits.PublicRPS,
			PublicBurst:   jsonCfg.Limits.PublicBurst,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
