package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adspend-report-api/infrastructure/integrator/cbr"
	"github.com/vfg2006/adspend-report-api/infrastructure/integrator/gsheets"
	"github.com/vfg2006/adspend-report-api/internal/api"
	"github.com/vfg2006/adspend-report-api/internal/config"
	"github.com/vfg2006/adspend-report-api/internal/usecases/aggregating"
	"github.com/vfg2006/adspend-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/adspend-report-api/internal/usecases/converting"
	"github.com/vfg2006/adspend-report-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetsClient, err := gsheets.NewClient(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar à API do Google Sheets")
	}
	sheetsService := gsheets.New(cfg, sheetsClient)

	cbrClient := cbr.NewClient(cfg)
	rateService := converting.NewService(cbrClient, cfg.Rates.CacheTTL)

	aggregator := aggregating.NewService(rateService)

	reportService := reporting.NewService(cfg, sheetsService, rateService, aggregator)

	authenticator := authenticating.NewService(cfg)

	server, err := api.New(cfg, reportService, authenticator)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
