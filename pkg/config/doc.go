// Package config loads typed configuration from the environment.
//
// Load optionally reads dotenv files through github.com/joho/godotenv and
// then parses the environment into a struct with github.com/caarlos0/env/v11,
// so every setting is declared once as a tagged field:
//
//	type Config struct {
//		Addr      string        `env:"FORMSERVER_ADDR" envDefault:":8080"`
//		SchemaDir string        `env:"FORMSERVER_SCHEMA_DIR,required"`
//		Timeout   time.Duration `env:"FORMSERVER_TIMEOUT" envDefault:"15s"`
//	}
//
//	cfg := config.MustLoad[Config](config.WithOptionalEnvFiles(".env"))
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be matched with
// errors.Is.
package config
