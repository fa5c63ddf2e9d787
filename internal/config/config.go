package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/studentnest/studentnest-backend/internal/utils"
)

const (
	AppName             = "studentnest-backend"
	LDConnectionTimeout = 5 * time.Second

	ldContextKind = "service"
)

type Config struct {
	Env     string
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Redis; empty addr disables the cache
	RedisAddr string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// LaunchDarkly flags
	LDFlag_SeedDbWithTestData bool
	LDFlag_CORSHighSecurity   bool
	LDFlag_BrowseActiveOnly   bool
}

func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	// optional
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		utils.Logger.Warn("REDIS_ADDR not set; unread-count caching disabled")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	ldSDKKey := os.Getenv("LD_SDK_KEY")
	if ldSDKKey == "" {
		utils.Logger.Fatal("LD_SDK_KEY env var is missing")
	}

	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldContextKind, AppName+"-"+env)

	seedDbWithTestDataFlag, err := ldClient.BoolVariation("seed_db_with_test_data", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving seed_db_with_test_data flag")
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", seedDbWithTestDataFlag)

	corsHighSecurityFlag, err := ldClient.BoolVariation("cors_high_security", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHighSecurityFlag)

	browseActiveOnlyFlag, err := ldClient.BoolVariation("browse_active_only", ctx, true)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving browse_active_only flag")
	}
	utils.Logger.Debugf("browse_active_only flag: %t", browseActiveOnlyFlag)

	return &Config{
		Env:                       env,
		AppName:                   AppName,
		AppPort:                   appPort,
		AppUrl:                    appUrl,
		DBUrl:                     dbURL,
		RedisAddr:                 redisAddr,
		RSAPublicKey:              pubKey,
		LDFlag_SeedDbWithTestData: seedDbWithTestDataFlag,
		LDFlag_CORSHighSecurity:   corsHighSecurityFlag,
		LDFlag_BrowseActiveOnly:   browseActiveOnlyFlag,
	}
}

func (c *Config) Close() {}
