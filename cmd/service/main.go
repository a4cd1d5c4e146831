package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal"
	"github.com/2beens/activeweek/internal/config"
	"github.com/2beens/activeweek/internal/logging"
	"github.com/2beens/activeweek/pkg"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	dotEnvPath := flag.String("dotenv", ".env", "optional .env file with secrets")
	flag.Parse()

	if err := config.LoadDotEnv(*dotEnvPath); err != nil {
		panic(err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		MaxBackups:       5,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "activeweek-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using storage backend: [%s]", cfg.StorageBackend)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "dev"
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	apiTokenHash := os.Getenv("ACTIVEWEEK_API_TOKEN_HASH")
	if cfg.AuthEnabled && apiTokenHash == "" {
		log.Fatalln("auth enabled but API token hash not set. use ACTIVEWEEK_API_TOKEN_HASH")
	}
	if !cfg.AuthEnabled {
		apiTokenHash = ""
	}

	redisPassword := os.Getenv("ACTIVEWEEK_REDIS_PASS")
	if cfg.StorageBackend == config.StorageRedis && redisPassword == "" {
		log.Warnln("redis password not set. use ACTIVEWEEK_REDIS_PASS")
	}
	postgresPassword := os.Getenv("ACTIVEWEEK_POSTGRES_PASS")

	var driveCredentials []byte
	if cfg.BackupDestination == config.BackupDrive {
		credsPath := os.Getenv("ACTIVEWEEK_DRIVE_CREDENTIALS")
		if credsPath == "" {
			log.Fatalln("drive backups need ACTIVEWEEK_DRIVE_CREDENTIALS (service account json path)")
		}
		driveCredentials, err = os.ReadFile(credsPath)
		if err != nil {
			log.Fatalf("read drive credentials: %s", err)
		}
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			APITokenHash:            apiTokenHash,
			RedisPassword:           redisPassword,
			PostgresPassword:        postgresPassword,
			DriveCredentialsJSON:    driveCredentials,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash assumes the binary runs from the project root.
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
