package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host               string
		Port               string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		User       string
		Password   string
		Host       string
		Port       string
		DisableTLS bool
	}

	SchoolConfig struct {
		Name string
		// EmailDomain is the institutional email domain suffix ("@siskiyouschool.org").
		// Accounts signing up with a matching address are auto-approved as teachers.
		EmailDomain string
		// AdminEmails is the administrator allow-list; compared case-insensitively.
		AdminEmails []string
	}

	Config struct {
		AppName          string
		Env              string // DEV (default), TEST, QA, PROD
		Debug            bool
		TestMode         bool
		SecretKey        string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail string
		SendgridAPIKey   string
		RollbarToken     string
		Server           ServerConfig
		Database         DatabaseConfig
		School           SchoolConfig
	}
)

func (c ServerConfig) Address() string   { return c.Host + ":" + c.Port }
func (c DatabaseConfig) Address() string { return c.Host + ":" + c.Port }

func (c Config) DefaultFromAddress() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}

// NewConfig loads the app configuration from the environment,
// merging a config/.env.<env> file if one exists.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Siskiyou School")
	conf.SetDefault("secretKey", "x71beb2t$=y24_a#&+jv^bp9(fn9&03-q5&yos@3f-bafy26&1")
	conf.SetDefault("workDir", Getwd())
	conf.SetDefault("frontendBaseUrl", "http://localhost:3000")
	conf.SetDefault("defaultFromEmail", "noreply@siskiyouschool.org")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("serverHost", "")
	conf.SetDefault("serverPort", "8000")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("shutdownTimeout", 5*time.Second)

	conf.SetDefault("databaseEngine", "postgres")
	conf.SetDefault("databaseName", "siskiyou")
	conf.SetDefault("databaseUser", "siskiyou")
	conf.SetDefault("databasePassword", "")
	conf.SetDefault("databaseHost", "localhost")
	conf.SetDefault("databasePort", "5432")
	conf.SetDefault("databaseDisableTls", true)

	conf.SetDefault("schoolName", "Siskiyou School")
	conf.SetDefault("schoolEmailDomain", "@siskiyouschool.org")
	conf.SetDefault("schoolAdminEmails", []string{
		"what.happens@gmail.com",
		"kristin.beers@siskiyouschool.org",
		"katherine.holden@siskiyouschool.org",
	})

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(conf.GetString("workDir"), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:          conf.GetString("appName"),
		Env:              env,
		Debug:            conf.GetBool("debug"),
		TestMode:         env == "TEST",
		SecretKey:        conf.GetString("secretKey"),
		WorkDir:          conf.GetString("workDir"),
		FrontendBaseURL:  conf.GetString("frontendBaseUrl"),
		DefaultFromEmail: conf.GetString("defaultFromEmail"),
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Port:               conf.GetString("serverPort"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
			ShutdownTimeout:    conf.GetDuration("shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("databaseEngine"),
			Name:       conf.GetString("databaseName"),
			User:       conf.GetString("databaseUser"),
			Password:   conf.GetString("databasePassword"),
			Host:       conf.GetString("databaseHost"),
			Port:       conf.GetString("databasePort"),
			DisableTLS: conf.GetBool("databaseDisableTls"),
		},
		School: SchoolConfig{
			Name:        conf.GetString("schoolName"),
			EmailDomain: conf.GetString("schoolEmailDomain"),
			AdminEmails: conf.GetStringSlice("schoolAdminEmails"),
		},
	}
}

// Getwd walks up from the working directory looking for the project root.
// go-test changes the working directory to the test package being run;
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			// not running from a checkout; fall back to the working directory
			return wd
		}
		currDir = newDir
	}
}
