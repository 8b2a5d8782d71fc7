package config

import (
	"github.com/Xenn-00/fitout-meister/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	APP struct {
		Name  string `mapstructure:"NAME"`
		Port  string `mapstructure:"PORT"`
		State string `mapstructure:"STATE"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"DSN"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
	}

	APP_SECRET struct {
		Paseto struct {
			HexKey string `mapstructure:"HEX_KEY"`
		}
	}

	MAILTRAP struct {
		Sandbox struct {
			SandboxHost   string `mapstructure:"SANDBOX_HOST"`
			SandboxAPI    string `mapstructure:"SANDBOX_API"`
			SandboxURL    string `mapstructure:"SANDBOX_URL"`
			SandboxDomain string `mapstructure:"SANDBOX_DOMAIN"`
		}
		API struct {
			APIToken         string `mapstructure:"API_TOKEN"`
			APIHost          string `mapstructure:"API_HOST"`
			MailtrapTokenAPI string `mapstructure:"MAILTRAP_TOKEN_API"`
			MailtrapURL      string `mapstructure:"MAILTRAP_URL"`
			MailtrapDomain   string `mapstructure:"MAILTRAP_DOMAIN"`
		}
	}

	FINANCE struct {
		// StrictBalance prüft das Guthaben zusätzlich innerhalb der gesperrten Transaktion.
		StrictBalance bool `mapstructure:"STRICT_BALANCE"`
	}

	QUOTATION struct {
		TaxRate string `mapstructure:"TAX_RATE"`
	}

	WORKER struct {
		Concurrency  int    `mapstructure:"CONCURRENCY"`
		OverdueSweep string `mapstructure:"OVERDUE_SWEEP"`
	}
}

const (
	defaultTaxRate      = "0.18"
	defaultConcurrency  = 10
	defaultOverdueSweep = "0 */6 * * *"
)

// TaxRate liefert QUOTATION.TAX_RATE als Dezimalzahl, ungültige Werte fallen auf 18 % zurück.
func (c *AppConfig) TaxRate() decimal.Decimal {
	rate, err := decimal.NewFromString(c.QUOTATION.TaxRate)
	if err != nil || rate.IsNegative() {
		log.Warn().Str("tax_rate", c.QUOTATION.TaxRate).Msg("Ungültiger Steuersatz, verwende Standard")
		return decimal.RequireFromString(defaultTaxRate)
	}
	return rate
}

func LoadConfig() *AppConfig {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Error().Err(err).Msg("Fehler beim Lesen der Konfigurationsdatei")
		return nil
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		log.Error().Err(err).Msg("Fehler beim Entpacken der Konfiguration")
		return nil
	}

	if config.APP.Port == "" {
		config.APP.Port = "8080"
	}

	if config.DATABASE.Postgres.DSN == "" {
		log.Error().Msg("Datenbank-DSN ist nicht konfiguriert")
		return nil
	}

	if config.APP_SECRET.Paseto.HexKey == "" {
		config.APP_SECRET.Paseto.HexKey = utils.GenerateSymmetricKey()
	}

	if config.QUOTATION.TaxRate == "" {
		config.QUOTATION.TaxRate = defaultTaxRate
	}
	if config.WORKER.Concurrency <= 0 {
		config.WORKER.Concurrency = defaultConcurrency
	}
	if config.WORKER.OverdueSweep == "" {
		config.WORKER.OverdueSweep = defaultOverdueSweep
	}

	log.Info().Msg("Konfiguration geladen...")
	return &config
}
