package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	envPrefix = "FATIGUE_"
)

type Application struct {
	Host        string    `koanf:"host" validate:"required"`
	Port        int       `koanf:"port" validate:"min=1,max=65535"`
	Environment string    `koanf:"environment" validate:"oneof=development production test"`
	FrontendUrl string    `koanf:"frontendurl" validate:"required,url"`
	Google      Google    `koanf:"google"`
	Oracle      Oracle    `koanf:"oracle"`
	Analysis    Analysis  `koanf:"analysis"`
	RateLimit   RateLimit `koanf:"ratelimit"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	RedirectUrl  string `koanf:"redirecturl" validate:"omitempty,url"`
}

type Oracle struct {
	ApiKey           string        `koanf:"apikey"`
	BaseUrl          string        `koanf:"baseurl" validate:"omitempty,url"`
	Model            string        `koanf:"model" validate:"required"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	BatchSize        int           `koanf:"batchsize" validate:"min=1"`
	BatchDelay       time.Duration `koanf:"batchdelay" validate:"gte=0"`
	FailureThreshold uint32        `koanf:"failurethreshold" validate:"min=1"`
	BreakerTimeout   time.Duration `koanf:"breakertimeout" validate:"gt=0"`
}

type Analysis struct {
	DefaultDays int    `koanf:"defaultdays" validate:"min=1"`
	MaxDays     int    `koanf:"maxdays" validate:"gtefield=DefaultDays"`
	WeekStart   string `koanf:"weekstart" validate:"oneof=sunday monday tuesday wednesday thursday friday saturday"`
}

type RateLimit struct {
	// Rate uses the limiter format, e.g. "100-M" for 100 requests per minute.
	Rate string `koanf:"rate" validate:"required"`
}

func (a Application) IsProduction() bool {
	return a.Environment == EnvProduction
}

func (a Application) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// FirstWeekday returns the configured week start, Monday when unrecognised.
func (a Analysis) FirstWeekday() time.Weekday {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), a.WeekStart) {
			return day
		}
	}
	return time.Monday
}

func defaults() Application {
	return Application{
		Host:        "0.0.0.0",
		Port:        3001,
		Environment: EnvDevelopment,
		FrontendUrl: "http://localhost:5173",
		Google: Google{
			RedirectUrl: "http://localhost:3001/auth/google/callback",
		},
		Oracle: Oracle{
			BaseUrl:          "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:            "gemini-2.5-flash-lite",
			Timeout:          30 * time.Second,
			BatchSize:        25,
			BatchDelay:       time.Second,
			FailureThreshold: 3,
			BreakerTimeout:   time.Minute,
		},
		Analysis: Analysis{
			DefaultDays: 30,
			MaxDays:     365,
			WeekStart:   "monday",
		},
		RateLimit: RateLimit{
			Rate: "100-M",
		},
	}
}

// Load reads defaults, the optional YAML file at path and FATIGUE_ prefixed
// environment variables, in that order. A .env file in the working directory
// is loaded into the environment first.
func Load(path string) (Application, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	app.FrontendUrl = strings.TrimSuffix(app.FrontendUrl, "/")

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(app); err != nil {
		return Application{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return app, nil
}
