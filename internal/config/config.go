package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	ConfigPath string
	Profile    string
	Verbose    bool
	ApiGinMode string

	Ip   string
	Port string

	// root of the flat-file datastore
	DataDir string

	// upload cap for task attachments, in MiB
	MaxUploadMB int

	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func Load(path string) Config {
	if err := godotenv.Load(path); err != nil {
		log.Printf("Failed to load the config file at %s, using default ones...", path)
	}

	s := strings.Split(path, "/")
	config := Config{
		ConfigPath: s[len(s)-1],
		Profile:    getEnv("PROFILE", "baremetal"),
		Verbose:    getBoolEnv("VERBOSE", "true"),
		ApiGinMode: getEnv("GIN_MODE", "debug"),

		Ip:   getEnv("IP", "localhost"),
		Port: getEnv("PORT", "5080"),

		DataDir:     getEnv("DATA_DIR", "./data"),
		MaxUploadMB: getIntEnv("MAX_UPLOAD_MB", 25),

		AllowedOrigins: getEnvFields("ALLOW_ORIGINS", []string{"*"}),
		AllowedMethods: getEnvFields("ALLOW_METHODS", []string{"*"}),
		AllowedHeaders: getEnvFields("ALLOW_HEADERS", []string{"*"}),
	}

	if config.Verbose {
		log.Print(config.toString())
	}

	return config
}

func getEnv(env, fallback string) string {
	if value, exists := os.LookupEnv(env); exists {
		return value
	}

	return fallback
}

func getEnvFields(env string, fallback []string) []string {
	if value, exists := os.LookupEnv(env); exists {
		fields := strings.Split(strings.TrimSpace(value), ",")

		return fields
	}

	return fallback
}

func getBoolEnv(env, fallback string) bool {
	if value, exists := os.LookupEnv(env); exists {
		return strings.ToLower(value) == "true"
	}

	return strings.ToLower(fallback) == "true"
}

func getIntEnv(env string, fallback int) int {
	if value, exists := os.LookupEnv(env); exists {
		int_value, err := strconv.Atoi(value)
		if err == nil {
			return int_value
		}
	}

	return fallback
}

func (cfg *Config) toString() string {
	var strBuilder strings.Builder

	reflectedValues := reflect.ValueOf(cfg).Elem()
	reflectedTypes := reflect.TypeOf(cfg).Elem()

	strBuilder.WriteString(fmt.Sprintf("[CFG]CONFIGURATION: %s\n", cfg.ConfigPath))

	for i := 0; i < reflectedValues.NumField(); i++ {
		fieldName := reflectedTypes.Field(i).Name
		fieldValue := reflectedValues.Field(i).Interface()

		strBuilder.WriteString("[CFG]")
		if i < 9 {
			strBuilder.WriteString(fmt.Sprintf("%d.  ", i+1))
		} else {
			strBuilder.WriteString(fmt.Sprintf("%d. ", i+1))
		}
		if len(fieldName) <= 6 {
			strBuilder.WriteString(fmt.Sprintf("%v\t\t\t\t\t-> %v\n", fieldName, fieldValue))
		} else if len(fieldName) <= 14 {
			strBuilder.WriteString(fmt.Sprintf("%v\t\t\t\t-> %v\n", fieldName, fieldValue))
		} else {
			strBuilder.WriteString(fmt.Sprintf("%v\t\t\t-> %v\n", fieldName, fieldValue))
		}
	}

	return strBuilder.String()
}
