package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// QuantityCorrection scopes the divide-by-N repair of a known upstream
// data-entry error to one product marker and one closed date window.
type QuantityCorrection struct {
	Marker  string
	From    time.Time
	To      time.Time
	Divisor float64
}

type Config struct {
	RawDataDir   string
	CanonicalCSV string
	DBPath       string

	FallbackYear int

	Correction QuantityCorrection

	AdjustMinPercent int
	AdjustMaxPercent int

	LowMaterialKg   float64
	DefaultWeightKg float64
	VotiveWeightKg  float64
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RawDataDir:   getEnv("RAW_DATA_DIR", filepath.Join(cwd, "dados_brutos")),
		CanonicalCSV: getEnv("CANONICAL_CSV", filepath.Join(cwd, "dados_vendas.csv")),
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "siprev.db")),

		FallbackYear: getEnvInt("FALLBACK_YEAR", 2024),

		Correction: QuantityCorrection{
			Marker:  getEnv("CORRECTION_MARKER", "PALITO C/100"),
			From:    getEnvDate("CORRECTION_FROM", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
			To:      getEnvDate("CORRECTION_TO", time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)),
			Divisor: getEnvFloat("CORRECTION_DIVISOR", 100),
		},

		AdjustMinPercent: getEnvInt("ADJUST_MIN_PERCENT", -50),
		AdjustMaxPercent: getEnvInt("ADJUST_MAX_PERCENT", 50),

		LowMaterialKg:   getEnvFloat("LOW_MATERIAL_KG", 50),
		DefaultWeightKg: getEnvFloat("DEFAULT_WEIGHT_KG", 0.3),
		VotiveWeightKg:  getEnvFloat("VOTIVE_WEIGHT_KG", 0.35),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDate(key string, fallback time.Time) time.Time {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return fallback
	}
	return parsed
}
