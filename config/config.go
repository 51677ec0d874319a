package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	BackendURL        string `mapstructure:"BACKEND_URL"`

	// Storage backend: "mongo" or "memory".
	Storage      string `mapstructure:"STORAGE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	// Bootstrap admin, created at startup when both are set.
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Cloudinary (receipt uploads).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// JazzCash sandbox.
	JazzCashMerchantID    string `mapstructure:"JAZZCASH_MERCHANT_ID"`
	JazzCashPassword      string `mapstructure:"JAZZCASH_PASSWORD"`
	JazzCashIntegritySalt string `mapstructure:"JAZZCASH_INTEGRITY_SALT"`
	JazzCashReturnURL     string `mapstructure:"JAZZCASH_RETURN_URL"`
	JazzCashPaymentURL    string `mapstructure:"JAZZCASH_PAYMENT_URL"`
	EasyPaisaStoreID      string `mapstructure:"EASYPAISA_STORE_ID"`
	EasyPaisaAPIKey       string `mapstructure:"EASYPAISA_API_KEY"`
	EasyPaisaReturnURL    string `mapstructure:"EASYPAISA_RETURN_URL"`
	EasyPaisaPaymentURL   string `mapstructure:"EASYPAISA_PAYMENT_URL"`
	BankAccountTitle      string `mapstructure:"BANK_ACCOUNT_TITLE"`
	BankAccountNumber     string `mapstructure:"BANK_ACCOUNT_NUMBER"`
	BankName              string `mapstructure:"BANK_NAME"`
	BankBranchCode        string `mapstructure:"BANK_BRANCH_CODE"`
	BankIBAN              string `mapstructure:"BANK_IBAN"`
}

// JazzCashConfig is the merchant configuration of the JazzCash-style wallet.
type JazzCashConfig struct {
	MerchantID    string
	Password      string
	IntegritySalt string
	ReturnURL     string
	PaymentURL    string
}

// EasyPaisaConfig is the store configuration of the EasyPaisa-style wallet.
type EasyPaisaConfig struct {
	StoreID     string
	APIKey      string
	ReturnURL   string
	PaymentURL  string
	PostBackURL string
}

// BankConfig holds the account customers transfer to.
type BankConfig struct {
	AccountTitle  string `json:"accountTitle"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	BranchCode    string `json:"branchCode"`
	IBAN          string `json:"iban"`
}

// GatewayConfig is handed to the payment adapter at construction.
type GatewayConfig struct {
	JazzCash  JazzCashConfig
	EasyPaisa EasyPaisaConfig
	Bank      BankConfig
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("BACKEND_URL", "http://localhost:5000")
	viper.SetDefault("STORAGE", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "swat_car_rental")
	viper.SetDefault("JWT_SECRET", "swat_local_secret")
	viper.SetDefault("JWT_TTL_HOURS", 720)
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")

	viper.SetDefault("JAZZCASH_MERCHANT_ID", "03288691013")
	viper.SetDefault("JAZZCASH_PASSWORD", "test_password")
	viper.SetDefault("JAZZCASH_INTEGRITY_SALT", "test_salt")
	viper.SetDefault("JAZZCASH_RETURN_URL", "http://localhost:3000/payment/success")
	viper.SetDefault("JAZZCASH_PAYMENT_URL", "https://sandbox.jazzcash.com.pk/CustomerPortal/transactionmanagement/merchantform")
	viper.SetDefault("EASYPAISA_STORE_ID", "03288691013")
	viper.SetDefault("EASYPAISA_API_KEY", "test_api_key")
	viper.SetDefault("EASYPAISA_RETURN_URL", "http://localhost:3000/payment/success")
	viper.SetDefault("EASYPAISA_PAYMENT_URL", "https://easypaisa.com.pk/easypay")
	viper.SetDefault("BANK_ACCOUNT_TITLE", "Swat Car Rental")
	viper.SetDefault("BANK_ACCOUNT_NUMBER", "0123456789012345")
	viper.SetDefault("BANK_NAME", "Meezan Bank")
	viper.SetDefault("BANK_BRANCH_CODE", "0456")
	viper.SetDefault("BANK_IBAN", "PK36MEZN0000000123456789")
}

// Gateways builds the payment gateway configuration from the loaded values.
func (c Config) Gateways() GatewayConfig {
	return GatewayConfig{
		JazzCash: JazzCashConfig{
			MerchantID:    c.JazzCashMerchantID,
			Password:      c.JazzCashPassword,
			IntegritySalt: c.JazzCashIntegritySalt,
			ReturnURL:     c.JazzCashReturnURL,
			PaymentURL:    c.JazzCashPaymentURL,
		},
		EasyPaisa: EasyPaisaConfig{
			StoreID:     c.EasyPaisaStoreID,
			APIKey:      c.EasyPaisaAPIKey,
			ReturnURL:   c.EasyPaisaReturnURL,
			PaymentURL:  c.EasyPaisaPaymentURL,
			PostBackURL: c.BackendURL + "/api/payments/easypaisa/callback",
		},
		Bank: BankConfig{
			AccountTitle:  c.BankAccountTitle,
			AccountNumber: c.BankAccountNumber,
			BankName:      c.BankName,
			BranchCode:    c.BankBranchCode,
			IBAN:          c.BankIBAN,
		},
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesMemoryStorage reports whether repositories should be kept in process memory.
func UsesMemoryStorage() bool {
	return AppConfig.Storage == "memory"
}
