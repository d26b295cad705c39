package config

import "strings"

// maskedPlaceholder is the value shown in place of masked credentials
const maskedPlaceholder = "****"

// sensitiveKeyPatterns lists substrings that mark a key as sensitive
var sensitiveKeyPatterns = []string{
	"token",
	"api_key",
	"apikey",
	"secret",
	"password",
	"private_key",
}

// isSensitiveKey checks if a configuration key holds a credential
func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// maskSensitiveValue masks a sensitive value, keeping the first and last
// 4 characters visible for identification. Short values are fully masked.
func maskSensitiveValue(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return maskedPlaceholder
	}
	return value[:4] + maskedPlaceholder + value[len(value)-4:]
}

// IsMaskedValue checks if a value is already a masked placeholder
func IsMaskedValue(value string) bool {
	return strings.Contains(value, maskedPlaceholder)
}

// Masked returns a copy of the configuration with credentials masked,
// suitable for logging at startup.
func (c *Config) Masked() *Config {
	masked := *c
	masked.Provider.Token = maskSensitiveValue(c.Provider.Token)
	masked.Agent.APIKey = maskSensitiveValue(c.Agent.APIKey)
	masked.Tracker.APIToken = maskSensitiveValue(c.Tracker.APIToken)
	return &masked
}
