package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate limiting for the HTTP surface, e.g. "100-M" for 100 requests per
	// minute per client IP.
	RateLimit string

	// CORS
	AllowedOrigins []string

	// LedgerRoles maps logical posting roles to chart-of-account codes. It is
	// validated here so an incomplete mapping fails at startup, not on the
	// first posting that needs the missing role.
	LedgerRoles domain.RoleMapping
}

// roleEnvKeys maps each ledger role to its environment variable.
var roleEnvKeys = map[domain.LedgerRole]string{
	domain.RoleCash:               "LEDGER_ROLE_CASH",
	domain.RoleQRISClearing:       "LEDGER_ROLE_QRIS_CLEARING",
	domain.RoleDebitClearing:      "LEDGER_ROLE_DEBIT_CLEARING",
	domain.RoleAccountsReceivable: "LEDGER_ROLE_ACCOUNTS_RECEIVABLE",
	domain.RoleSalesRevenue:       "LEDGER_ROLE_SALES_REVENUE",
	domain.RoleSalesDiscount:      "LEDGER_ROLE_SALES_DISCOUNT",
	domain.RoleTaxPayable:         "LEDGER_ROLE_TAX_PAYABLE",
	domain.RoleSavingsLiability:   "LEDGER_ROLE_SAVINGS_LIABILITY",
	domain.RoleLoanReceivable:     "LEDGER_ROLE_LOAN_RECEIVABLE",
	domain.RoleInterestIncome:     "LEDGER_ROLE_INTEREST_INCOME",
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. An incomplete ledger role mapping is a hard error.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, envKey := range roleEnvKeys {
		viper.SetDefault(envKey, "")
	}

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	origins := viper.GetString("ALLOWED_ORIGINS")
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	cfg.LedgerRoles = make(domain.RoleMapping, len(roleEnvKeys))
	for role, envKey := range roleEnvKeys {
		if code := viper.GetString(envKey); code != "" {
			cfg.LedgerRoles[role] = code
		}
	}
	if err := cfg.LedgerRoles.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger role configuration: %w", err)
	}

	return cfg, nil
}
