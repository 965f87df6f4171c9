package utils

import (
	"os"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]+`)

// GenerateEnvVarName uppercases the input and replaces runs of other characters with
// underscores, e.g. "my-client.v2" becomes "MY_CLIENT_V2".
func GenerateEnvVarName(input string) string {
	normalized := nonAlphanumeric.ReplaceAllString(strings.ToUpper(input), "_")
	return strings.Trim(normalized, "_")
}

// GenerateAPIClientKeyEnvVarName is the variable holding the API key of a named builder API
// client. Format: BUILDER_API_KEY_FOR_{NORMALIZED_NAME}
func GenerateAPIClientKeyEnvVarName(clientName string) string {
	return "BUILDER_API_KEY_FOR_" + GenerateEnvVarName(clientName)
}

// OverrideFromEnv returns the value of the variable when it is set and not empty, otherwise current.
func OverrideFromEnv(envVar string, current string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return current
}
