package config

import "testing"

func validConfig() *Config {
	return &Config{
		Auth:     AuthConfig{SecretKey: "s"},
		Postgres: PostgresConfig{Database: "trendulum"},
		Qloo:     QlooConfig{BaseURL: "https://hackathon.api.qloo.com"},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	missingSecret := validConfig()
	missingSecret.Auth.SecretKey = ""
	if err := missingSecret.Validate(); err == nil {
		t.Error("missing SECRET_KEY should fail validation")
	}

	missingDB := validConfig()
	missingDB.Postgres.Database = ""
	if err := missingDB.Validate(); err == nil {
		t.Error("missing POSTGRES_DB should fail validation")
	}
}

func TestValidateAllowsMissingAPIKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Qloo.APIKey = ""
	cfg.OpenAI.APIKey = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("absent API keys should not fail validation: %v", err)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	got := parseCommaSeparated("http://a.test, http://b.test ,,")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("parseCommaSeparated() = %v", got)
	}
	if len(parseCommaSeparated("")) != 0 {
		t.Error("empty input should yield no origins")
	}
}
