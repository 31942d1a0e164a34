package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis (optional, rate limiting only)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Auth
	AuthProviderURL string
	SessionTTL      time.Duration

	// Server
	Port        string
	AppEnv      string
	CORSOrigins string

	// Logging
	LogLevel string

	// Rate limiting
	RateLimitPerMin int

	// Development bootstrap admin
	AdminEmail string
	AdminName  string
}

// GetDSN builds the MySQL DSN. clientFoundRows makes UPDATE report
// matched rows instead of changed rows; without it a no-op update
// (e.g. re-submitting a user's current role) counts as 0 and would be
// mistaken for a missing row.
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true"
}

var AppConfig *Config

func LoadConfig() {
	useSSM := getEnv("USE_SSM", "false") == "true"

	var paramMap map[string]string

	// Stage & base path for SSM (allows multi-env without code changes)
	basePath := strings.TrimRight(getEnv("SSM_BASE_PATH", "/classtrack"), "/")
	stage := getEnv("STAGE", getEnv("APP_ENV", "production"))
	prefix := basePath + "/" + stage

	if useSSM {
		sess, err := session.NewSession(&aws.Config{Region: aws.String(getEnv("AWS_REGION", "ap-southeast-1"))})
		if err != nil {
			log.Fatal("Failed to create AWS session:", err)
		}
		log.Printf("Using AWS SSM Parameter Store (prefix=%s)", prefix)
		paramMap = fetchSSMParameters(ssm.New(sess), prefix)
	} else {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found, using environment variables")
		}
	}

	// Helper accessor respecting map / env fallback
	getVal := func(key, def string) string {
		if useSSM {
			if v, ok := paramMap[strings.ToUpper(key)]; ok && v != "" {
				return v
			}
		}
		return getEnv(strings.ToUpper(key), def)
	}

	sessionTTL, err := parseDuration(getVal("SESSION_TTL", "7d"))
	if err != nil {
		log.Fatal("Invalid SESSION_TTL format:", err)
	}

	rateLimit, err := strconv.Atoi(getVal("RATE_LIMIT_PER_MIN", "120"))
	if err != nil {
		log.Fatal("Invalid RATE_LIMIT_PER_MIN format:", err)
	}

	AppConfig = &Config{
		DBHost:     getVal("DB_HOST", "localhost"),
		DBPort:     getVal("DB_PORT", "3306"),
		DBUser:     getVal("DB_USER", "root"),
		DBPassword: getVal("DB_PASSWORD", ""),
		DBName:     getVal("DB_NAME", "classtrack_go"),

		RedisHost:     getVal("REDIS_HOST", "localhost"),
		RedisPort:     getVal("REDIS_PORT", "6379"),
		RedisPassword: getVal("REDIS_PASSWORD", ""),

		AuthProviderURL: getVal("AUTH_PROVIDER_URL", "https://demobackend.emergentagent.com"),
		SessionTTL:      sessionTTL,

		Port:        getVal("PORT", "3000"),
		AppEnv:      getVal("APP_ENV", "development"),
		CORSOrigins: getVal("CORS_ORIGINS", "http://localhost:3000"),

		LogLevel: getVal("LOG_LEVEL", "info"),

		RateLimitPerMin: rateLimit,

		AdminEmail: getVal("ADMIN_EMAIL", ""),
		AdminName:  getVal("ADMIN_NAME", "Administrator"),
	}

	validateConfig(AppConfig, useSSM)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration accepts Go durations plus d/w shorthand ("7d", "2w").
func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}
	t := strings.TrimSpace(strings.ToLower(s))
	if len(t) > 1 {
		unit := t[len(t)-1]
		if n, convErr := strconv.Atoi(t[:len(t)-1]); convErr == nil {
			switch unit {
			case 'd':
				return time.Duration(n) * 24 * time.Hour, nil
			case 'w':
				return time.Duration(n*7) * 24 * time.Hour, nil
			}
		}
	}
	return 0, err
}

// fetchSSMParameters reads all parameters under prefix and returns a map
// keyed by the UPPERCASE last path segment.
func fetchSSMParameters(client *ssm.SSM, prefix string) map[string]string {
	out := make(map[string]string)
	var next *string
	for {
		in := &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			WithDecryption: aws.Bool(true),
			Recursive:      aws.Bool(true),
			NextToken:      next,
		}
		resp, err := client.GetParametersByPath(in)
		if err != nil {
			log.Printf("Warning: unable to fetch SSM parameters for prefix %s: %v", prefix, err)
			break
		}
		for _, p := range resp.Parameters {
			if p.Name == nil || p.Value == nil {
				continue
			}
			key := *p.Name
			if idx := strings.LastIndex(key, "/"); idx >= 0 {
				key = key[idx+1:]
			}
			if key != "" {
				out[strings.ToUpper(key)] = *p.Value
			}
		}
		if resp.NextToken == nil || *resp.NextToken == "" {
			break
		}
		next = resp.NextToken
	}
	return out
}

func validateConfig(c *Config, usedSSM bool) {
	// Only enforce stricter rules in production
	if strings.ToLower(c.AppEnv) != "production" {
		return
	}
	if strings.TrimSpace(c.DBPassword) == "" {
		log.Fatalf("Missing required secret DB_PASSWORD in production (SSM=%v)", usedSSM)
	}
	if strings.TrimSpace(c.AuthProviderURL) == "" {
		log.Fatal("AUTH_PROVIDER_URL must be set in production")
	}
}
