package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all generator settings, populated from environment variables.
// Every default reproduces the values the form generator has always used, so
// an unconfigured run targets the production EIEL database.
type Config struct {
	DBHost           string
	DBPort           int
	DBName           string
	DBUser           string
	DBPassword       string
	DBClientEncoding string

	TemplateDir   string
	TemplateWater string
	TemplateWorks string

	OutputDir         string
	MunicipalitiesTSV string

	// External endpoints injected into both form templates.
	URLAppsScript  string
	URLGoogleForms string

	LogLevel  string
	LogFormat string

	// Optional sinks. Empty values disable them.
	PushgatewayURL string
	KafkaBrokers   []string
	KafkaTopic     string
}

const (
	defaultURLAppsScript  = "https://script.google.com/macros/s/AKfycbwZqswRuGBHfzPV1CwoGVW8QMRZBW5KJ4WVJ68gRVxfmn9N9BO5_VyDo4n25NiSXXwfUw/exec"
	defaultURLGoogleForms = "https://docs.google.com/forms/d/e/1FAIpQLSc84PLY4O2wM9ek3v6L14DzZ8jcqDtFeKOK01i38s7ttPt0Ng/formResponse"
)

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	port, err := parsePort(sharedcfg.EnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := strings.TrimSpace(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		DBHost:           sharedcfg.EnvOrDefault("DB_HOST", "172.23.0.8"),
		DBPort:           port,
		DBName:           sharedcfg.EnvOrDefault("DB_NAME", "EIEL"),
		DBUser:           sharedcfg.EnvOrDefault("DB_USER", "cguillen"),
		DBPassword:       sharedcfg.EnvOrDefault("DB_PASSWORD", "passSV8"),
		DBClientEncoding: sharedcfg.EnvOrDefault("DB_CLIENT_ENCODING", "UTF8"),

		TemplateDir:   sharedcfg.EnvOrDefault("TEMPLATE_DIR", "templates"),
		TemplateWater: sharedcfg.EnvOrDefault("TEMPLATE_WATER", "form-agua-template.html.j2"),
		TemplateWorks: sharedcfg.EnvOrDefault("TEMPLATE_WORKS", "form-obras-template.html.j2"),

		OutputDir:         sharedcfg.EnvOrDefault("OUTPUT_DIR", "formularios"),
		MunicipalitiesTSV: sharedcfg.EnvOrDefault("MUNICIPALITIES_TSV", "municipios.tsv"),

		URLAppsScript:  sharedcfg.EnvOrDefault("URL_APPS_SCRIPT", defaultURLAppsScript),
		URLGoogleForms: sharedcfg.EnvOrDefault("URL_GOOGLE_FORMS", defaultURLGoogleForms),

		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),

		PushgatewayURL: sharedcfg.EnvOrDefault("PUSHGATEWAY_URL", ""),
		KafkaBrokers:   brokers,
		KafkaTopic:     sharedcfg.EnvOrDefault("KAFKA_TOPIC", "eiel-forms-generated"),
	}

	if cfg.DBHost == "" {
		return nil, errors.New("DB_HOST is required")
	}
	if cfg.DBName == "" {
		return nil, errors.New("DB_NAME is required")
	}
	if cfg.TemplateWater == "" || cfg.TemplateWorks == "" {
		return nil, errors.New("TEMPLATE_WATER and TEMPLATE_WORKS are required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

// KafkaEnabled reports whether generation events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parsePort(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("invalid DB_PORT %q", s)
	}
	return n, nil
}
