package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const defaultParamsFile = "config/calculation_parameters.yaml"

// CalculationParams son los parámetros ajustables del motor de simulación.
// Vienen de un archivo YAML opcional; si falta se usan los valores por
// defecto compilados.
type CalculationParams struct {
	MaxScheduleMonths int     `yaml:"max_schedule_months"`
	MinPaymentBuffer  float64 `yaml:"min_payment_buffer"`
	MinPaymentRate    float64 `yaml:"min_payment_rate"`
}

func DefaultCalculationParams() CalculationParams {
	return CalculationParams{
		MaxScheduleMonths: 600, // 50 años
		MinPaymentBuffer:  25,
		MinPaymentRate:    0.02,
	}
}

type Config struct {
	Port              string
	RedisAddr         string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	Calculation       CalculationParams
}

// Load lee variables de entorno (con .env opcional vía godotenv) y el
// archivo de parámetros de cálculo.
func Load() Config {
	godotenv.Load()

	return Config{
		Port:              envOr("PORT", "8080"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RateLimitRequests: envIntOr("RATE_LIMIT_REQUESTS", 5),
		RateLimitWindow:   time.Minute,
		Calculation:       LoadCalculationParams(envOr("CALCULATION_PARAMS_FILE", defaultParamsFile)),
	}
}

// LoadCalculationParams carga el YAML de parámetros. Cualquier fallo cae a
// los valores por defecto con una advertencia, nunca detiene el arranque.
func LoadCalculationParams(path string) CalculationParams {
	params := DefaultCalculationParams()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: using default calculation parameters: %v", err)
		return params
	}

	if err := yaml.Unmarshal(data, &params); err != nil {
		log.Printf("Warning: invalid calculation parameters file %s: %v", path, err)
		return DefaultCalculationParams()
	}

	defaults := DefaultCalculationParams()
	if params.MaxScheduleMonths <= 0 {
		params.MaxScheduleMonths = defaults.MaxScheduleMonths
	}
	if params.MinPaymentBuffer < 0 {
		params.MinPaymentBuffer = defaults.MinPaymentBuffer
	}
	if params.MinPaymentRate <= 0 {
		params.MinPaymentRate = defaults.MinPaymentRate
	}
	return params
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid value for %s: %q", key, value)
		return fallback
	}
	return parsed
}
