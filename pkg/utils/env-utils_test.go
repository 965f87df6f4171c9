package utils

import "testing"

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase", input: "editor", expected: "EDITOR"},
		{name: "hyphens", input: "admin-frontend", expected: "ADMIN_FRONTEND"},
		{name: "mixed separators", input: "lint-job_nightly.v2", expected: "LINT_JOB_NIGHTLY_V2"},
		{name: "leading and trailing separators", input: "-editor-", expected: "EDITOR"},
		{name: "empty", input: "", expected: ""},
		{name: "only separators", input: "...", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := GenerateEnvVarName(tt.input); result != tt.expected {
				t.Errorf("GenerateEnvVarName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGenerateAPIClientKeyEnvVarName(t *testing.T) {
	if result := GenerateAPIClientKeyEnvVarName("admin frontend"); result != "BUILDER_API_KEY_FOR_ADMIN_FRONTEND" {
		t.Errorf("unexpected env var name: %s", result)
	}
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("TEST_OVERRIDE_SET", "from-env")
	t.Setenv("TEST_OVERRIDE_EMPTY", "")

	if v := OverrideFromEnv("TEST_OVERRIDE_SET", "from-file"); v != "from-env" {
		t.Errorf("unexpected value: %s", v)
	}
	if v := OverrideFromEnv("TEST_OVERRIDE_EMPTY", "from-file"); v != "from-file" {
		t.Errorf("unexpected value: %s", v)
	}
}
