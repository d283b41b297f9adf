package config

import (
	"log"
	"os"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	ProfileAPI   string // remote profile backend for eco-point sync (optional)
	CommunityAPI string // remote community feed for post sync (optional)
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "ecocart.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./ecocart.log"
	}

	cfg := Config{
		Port:         port,
		DBDSN:        dsn,
		LogFile:      logFile,
		ProfileAPI:   os.Getenv("PROFILE_API_URL"),
		CommunityAPI: os.Getenv("COMMUNITY_API_URL"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s PROFILE_API=%s COMMUNITY_API=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.ProfileAPI, cfg.CommunityAPI)
	return cfg
}
