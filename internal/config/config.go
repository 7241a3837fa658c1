package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	ReportsEnabled  bool
	OperatorWorkers int

	CategoryModelPath string
	DefaultModelPath  string
	KeywordRulesPath  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		HTTPPort:        "9446",
		ReportsEnabled:  true,
		OperatorWorkers: 4,

		CategoryModelPath: "models/category_model.json",
		DefaultModelPath:  "models/pd_model.json",

		OpenAIModel: "gpt-4o-mini",
	}

	stringVars := map[string]*string{
		"POSTGRES_ADDRESS":    &env.PostgresAddress,
		"POSTGRES_PORT":       &env.PostgresPort,
		"POSTGRES_DB":         &env.PostgresDB,
		"POSTGRES_USERNAME":   &env.PostgresUsername,
		"POSTGRES_PASSWORD":   &env.PostgresPassword,
		"HTTP_PORT":           &env.HTTPPort,
		"CATEGORY_MODEL_PATH": &env.CategoryModelPath,
		"DEFAULT_MODEL_PATH":  &env.DefaultModelPath,
		"KEYWORD_RULES_PATH":  &env.KeywordRulesPath,
		"OPENAI_API_KEY":      &env.OpenAIAPIKey,
		"OPENAI_BASE_URL":     &env.OpenAIBaseURL,
		"OPENAI_MODEL":        &env.OpenAIModel,
	}

	for name, target := range stringVars {
		if value := os.Getenv(name); len(value) != 0 {
			*target = value
		}
	}

	if value := os.Getenv("REPORTS_ENABLED"); len(value) != 0 {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("REPORTS_ENABLED: %w", err)
		}
		env.ReportsEnabled = enabled
	}

	if value := os.Getenv("OPERATOR_WORKERS"); len(value) != 0 {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_WORKERS: %w", err)
		}
		env.OperatorWorkers = workers
	}

	return &env, nil
}
