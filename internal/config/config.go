// Package config предоставляет структуры и функции для парсинга и загрузки конфига.
// Помимо настроек инфраструктуры (база, redis, rabbitmq, http) здесь живут
// все бизнес-константы тарификации: ставка комиссии, цены тарифов,
// длительности пробных периодов, лестница скидок на собак и надбавки за
// дополнительных участников. Константы валидируются один раз при старте.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	RabbitMQConnection      string `yaml:"rabbitmq_connection" env:"RABBITMQ_CONNECTION"`
	AdviceAPIURL            string `yaml:"advice_api_url" env:"ADVICE_API_URL"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Billing                 `yaml:"billing"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Billing содержит все тарифные константы платформы. Значения по умолчанию
// повторяют прайс продукта; их можно переопределить через yaml или окружение.
type Billing struct {
	CommissionRate           float64 `yaml:"commission_rate" env-default:"0.20"`
	OwnerTrialDays           int     `yaml:"owner_trial_days" env-default:"90"`
	BusinessTrialDays        int     `yaml:"business_trial_days" env-default:"180"`
	OwnerPriceMonthly        float64 `yaml:"owner_price_monthly" env-default:"19.9"`
	OwnerPriceAnnual         float64 `yaml:"owner_price_annual" env-default:"14.9"`
	BusinessPromotionMonthly float64 `yaml:"business_promotion_monthly" env-default:"250"`
	BusinessPromotionAnnual  float64 `yaml:"business_promotion_annual" env-default:"2500"`
	AddonPriceMonthly        float64 `yaml:"addon_price_monthly" env-default:"80"`
	AddonPriceAnnual         float64 `yaml:"addon_price_annual" env-default:"50"`
	IncludedCollaborators    int     `yaml:"included_collaborators" env-default:"3"`
	ExtraPersonMonthly       float64 `yaml:"extra_person_monthly" env-default:"1.5"`
	ExtraPersonAnnual        float64 `yaml:"extra_person_annual" env-default:"1.0"`
	MaxDealsPerBusiness      int     `yaml:"max_deals_per_business" env-default:"5"`
}

// DogTierMultipliers лестница скидок по позиции собаки в домохозяйстве:
// первая собака — полная цена, вторая — 75%, третья и четвертая — 50%,
// пятая и дальше — 5%.
var DogTierMultipliers = []float64{1.00, 0.75, 0.50, 0.50}

// DogTierTail множитель для всех собак за пределами лестницы.
const DogTierTail = 0.05

// Validate проверяет согласованность тарифных констант.
func (b Billing) Validate() error {
	const op = "config.Billing.Validate"
	if b.CommissionRate < 0 || b.CommissionRate >= 1 {
		return fmt.Errorf("%s: commission rate must be in [0, 1): %f", op, b.CommissionRate)
	}
	if b.OwnerTrialDays <= 0 || b.BusinessTrialDays <= 0 {
		return fmt.Errorf("%s: trial caps must be positive", op)
	}
	if b.IncludedCollaborators < 1 {
		return fmt.Errorf("%s: included collaborators must be at least 1", op)
	}
	if b.ExtraPersonMonthly < 0 || b.ExtraPersonAnnual < 0 {
		return fmt.Errorf("%s: per-person surcharge must not be negative", op)
	}
	if b.MaxDealsPerBusiness < 1 {
		return fmt.Errorf("%s: max deals per business must be at least 1", op)
	}
	if b.OwnerPriceMonthly <= 0 || b.OwnerPriceAnnual <= 0 {
		return fmt.Errorf("%s: owner prices must be positive", op)
	}
	return nil
}

// MustLoad функция для загрузки конфига, путь берется из CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if err := cfg.Billing.Validate(); err != nil {
		log.Fatalf("invalid billing config: %s", err)
	}
	return &cfg
}
