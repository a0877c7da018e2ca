package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"backend": "sqlite",
			"path":    "~/.remind/remind.db",
			"redis": map[string]interface{}{
				"addr":     "localhost:6379",
				"password": "",
				"db":       0,
			},
		},
		"features": map[string]interface{}{
			"tagging":      true,
			"history":      true,
			"recurrence":   true,
			"notification": true,
		},
		"notify": map[string]interface{}{
			"provider":  "relay",
			"relay_url": "http://localhost:3000",
			"from_name": "Reminder App",
			"template": map[string]interface{}{
				"endpoint":    "", // empty = service default
				"service_id":  "",
				"template_id": "",
				"user_id":     "",
			},
		},
		"relay": map[string]interface{}{
			"listen_addr": ":3000",
			"smtp": map[string]interface{}{
				"host":         "smtp.ethereal.email",
				"port":         587,
				"username":     "",
				"password":     "",
				"from":         "\"Reminder App\" <reminder@example.com>",
				"preview_base": "https://ethereal.email/message/",
			},
		},
		"ui": map[string]interface{}{
			"theme":          "light",
			"colored_output": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.remind/config.yaml"
}
