package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	PayU     PayUConfig
	UPI      UPIConfig
	WhatsApp WhatsAppConfig
	Frontend FrontendConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URI            string
	Name           string
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

// PayUConfig holds the merchant credentials and endpoint for the PayU
// hosted-checkout hand-off. Salt is the shared signing secret and must
// never appear in logs or responses.
type PayUConfig struct {
	MerchantKey string
	Salt        string
	BaseURL     string
	SuccessURL  string
	FailureURL  string
}

type UPIConfig struct {
	PayeeAddress string
	PayeeName    string
	// StatusURL is the provider endpoint polled to verify a UPI payment.
	// Empty disables verification: calls report an error instead of guessing.
	StatusURL string
}

type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string // e.g. whatsapp:+14155238886
}

type FrontendConfig struct {
	// BaseURL of the React site. Callback handlers redirect the browser to
	// BaseURL + /donation/result with txnid and outcome params.
	BaseURL string
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8085"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			URI:            getenv("MONGODB_URI", "mongodb://localhost:27017"),
			Name:           getenv("MONGODB_NAME", "iskcon_juhu"),
			ConnectTimeout: getSeconds("MONGODB_CONNECT_TIMEOUT_SEC", 10),
		},
		JWT: JWTConfig{
			AccessSecret: getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			AccessExpiry: getMinutes("JWT_ACCESS_EXPIRY_MIN", 360),
			Issuer:       "iskcon-juhu",
		},
		PayU: PayUConfig{
			MerchantKey: os.Getenv("PAYU_MERCHANT_KEY"),
			Salt:        os.Getenv("PAYU_SALT"),
			BaseURL:     getenv("PAYU_BASE_URL", "https://secure.payu.in/_payment"),
			SuccessURL:  getenv("PAYU_SUCCESS_URL", "http://localhost:8085/api/v1/payments/payu/success"),
			FailureURL:  getenv("PAYU_FAILURE_URL", "http://localhost:8085/api/v1/payments/payu/failure"),
		},
		UPI: UPIConfig{
			PayeeAddress: getenv("UPI_PAYEE_ADDRESS", "iskconjuhu@sbi"),
			PayeeName:    getenv("UPI_PAYEE_NAME", "ISKCON Juhu"),
			StatusURL:    os.Getenv("UPI_STATUS_URL"),
		},
		WhatsApp: WhatsAppConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_WHATSAPP_FROM"),
		},
		Frontend: FrontendConfig{
			BaseURL: getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getSeconds(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Second
}

func getMinutes(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Minute
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
