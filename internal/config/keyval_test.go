package config

import "testing"

func TestGetSetConfigValue(t *testing.T) {
	cfg := DefaultConfig()

	if err := SetConfigValue(cfg, "min_severity", "critical"); err != nil {
		t.Fatalf("SetConfigValue: %v", err)
	}
	if cfg.MinSeverity != "critical" {
		t.Errorf("MinSeverity = %q", cfg.MinSeverity)
	}

	if err := SetConfigValue(cfg, "max_concurrency", "8"); err != nil {
		t.Fatalf("SetConfigValue int: %v", err)
	}
	if cfg.MaxConcurrency != 8 {
		t.Errorf("MaxConcurrency = %d", cfg.MaxConcurrency)
	}

	got, err := GetConfigValue(cfg, "max_concurrency")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if got != "8" {
		t.Errorf("GetConfigValue = %q", got)
	}
}

func TestSetConfigValue_Errors(t *testing.T) {
	cfg := DefaultConfig()

	if err := SetConfigValue(cfg, "no_such_key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := SetConfigValue(cfg, "max_concurrency", "lots"); err == nil {
		t.Error("expected error for non-integer value")
	}
}

func TestIsValidKey(t *testing.T) {
	if !IsValidKey("github_token") {
		t.Error("github_token should be valid")
	}
	if !IsValidKey("agent") {
		t.Error("agent (repo key) should be valid")
	}
	if IsValidKey("bogus") {
		t.Error("bogus should be invalid")
	}
}

func TestSensitiveKeyMasking(t *testing.T) {
	if !IsSensitiveKey("github_token") {
		t.Error("github_token should be sensitive")
	}
	if !IsSensitiveKey("anthropic_api_key") {
		t.Error("anthropic_api_key should be sensitive")
	}
	if IsSensitiveKey("min_severity") {
		t.Error("min_severity should not be sensitive")
	}

	if got := MaskValue("ghp_1234567890abcd"); got != "****abcd" {
		t.Errorf("MaskValue = %q", got)
	}
	if got := MaskValue("ab"); got != "****" {
		t.Errorf("MaskValue short = %q", got)
	}
}

func TestListConfigKeys_SkipsZero(t *testing.T) {
	cfg := &Config{GitHubToken: "tok", MinSeverity: "major"}

	keys := make(map[string]string)
	for _, kv := range ListConfigKeys(cfg) {
		keys[kv.Key] = kv.Value
	}
	if keys["github_token"] != "tok" {
		t.Errorf("github_token = %q", keys["github_token"])
	}
	if keys["min_severity"] != "major" {
		t.Errorf("min_severity = %q", keys["min_severity"])
	}
	if _, ok := keys["max_concurrency"]; ok {
		t.Error("zero max_concurrency should be omitted")
	}
}
