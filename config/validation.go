package config

import (
	"fmt"
	"strings"
)

// requiredByEnvironment lists the Config fields that must be present for
// each environment. Development and test tolerate missing upstream
// credentials so the service can run against fakes.
var requiredByEnvironment = map[Environment][]string{
	Development: {"DBUser", "DBPassword"},
	Test:        {},
	CI:          {"DBUser", "DBPassword"},
	Production:  {"DBUser", "DBPassword", "OpenAIAPIKey", "RedisPassword"},
}

// ValidateConfig checks that the configuration meets the requirements for
// the current environment.
func ValidateConfig(cfg *Config) error {
	values := map[string]string{
		"DBUser":        cfg.DBUser,
		"DBPassword":    cfg.DBPassword,
		"OpenAIAPIKey":  cfg.OpenAIAPIKey,
		"RedisPassword": cfg.RedisPassword,
	}

	var errors []string
	for _, field := range requiredByEnvironment[GetEnvironment()] {
		if values[field] == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", field))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}
