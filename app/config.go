package app

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the process configuration, loaded from a JSON file.
type Config struct {
	Verbose                 bool     `json:"verbose"`
	Port                    int      `json:"port"`
	BaseApiUrl              string   `json:"base_api_url"`
	AllowOrigins            []string `json:"allow_origins"`
	DbHost                  string   `json:"db_host"`
	DbPort                  int      `json:"db_port"`
	DbUser                  string   `json:"db_user"`
	DbPassword              string   `json:"db_password"`
	DbName                  string   `json:"db_name"`
	DbSchema                string   `json:"db_schema"`
	JwtSecret               string   `json:"jwt_secret"`
	AuthTokenExpirationTime int      `json:"auth_token_expiration_time"`
	RefreshTokenDays        int      `json:"refresh_token_days"`
	AmqpUrl                 string   `json:"amqp_url"`
	AmqpExchange            string   `json:"amqp_exchange"`
	MigrationsDir           string   `json:"migrations_dir"`
}

// LoadConfig reads the JSON config file and applies defaults for fields
// the file leaves out.
func LoadConfig(fileName string) (Config, error) {
	var config Config

	file, err := os.Open(fileName)
	if err != nil {
		return config, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Port == 0 {
		config.Port = 8080
	}
	if config.DbPort == 0 {
		config.DbPort = 5432
	}
	if config.DbSchema == "" {
		config.DbSchema = "public"
	}
	if config.AuthTokenExpirationTime == 0 {
		config.AuthTokenExpirationTime = 600 // default: 10 minutes
	}
	if config.RefreshTokenDays == 0 {
		config.RefreshTokenDays = 7
	}
	if config.AmqpExchange == "" {
		config.AmqpExchange = "admin.invalidate"
	}
	if config.MigrationsDir == "" {
		config.MigrationsDir = "migrations/postgres"
	}
	if config.JwtSecret == "" {
		return config, fmt.Errorf("config is missing jwt_secret")
	}

	return config, nil
}

func (config Config) Print() {
	fmt.Println("app Config")
	fmt.Printf("  verbose: %t\n", config.Verbose)
	fmt.Printf("  port: %d\n", config.Port)
	fmt.Printf("  base_api_url: %s\n", config.BaseApiUrl)
	fmt.Printf("  allow_origins: %v\n", config.AllowOrigins)
	fmt.Printf("  db_host: %s\n", config.DbHost)
	fmt.Printf("  db_port: %d\n", config.DbPort)
	fmt.Printf("  db_user: %s\n", config.DbUser)
	fmt.Printf("  db_name: %s\n", config.DbName)
	fmt.Printf("  db_schema: %s\n", config.DbSchema)
	fmt.Printf("  amqp_url: %s\n", config.AmqpUrl)
	fmt.Printf("  amqp_exchange: %s\n", config.AmqpExchange)
	fmt.Printf("  migrations_dir: %s\n", config.MigrationsDir)
}
