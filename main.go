package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/creditwise/api"
	"github.com/carson-networks/creditwise/internal/config"
	"github.com/carson-networks/creditwise/internal/handlers/v1/status"
	"github.com/carson-networks/creditwise/internal/logging"
	"github.com/carson-networks/creditwise/internal/model"
	"github.com/carson-networks/creditwise/internal/narrator"
	"github.com/carson-networks/creditwise/internal/operator"
	"github.com/carson-networks/creditwise/internal/service"
	"github.com/carson-networks/creditwise/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("creditwise starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	models := model.Load(model.Paths{
		CategoryModel: envConfig.CategoryModelPath,
		DefaultModel:  envConfig.DefaultModelPath,
		KeywordRules:  envConfig.KeywordRulesPath,
	}, logger)

	deps := service.Dependencies{
		Pipeline:       models.Pipeline(logger),
		Narrator:       narrator.New(envConfig.OpenAIAPIKey, envConfig.OpenAIBaseURL, envConfig.OpenAIModel),
		ReportsEnabled: envConfig.ReportsEnabled,
		Logger:         logger,
	}

	if envConfig.ReportsEnabled {
		dbStorage := storage.NewStorage(envConfig)
		defer dbStorage.Close()

		delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
		delegator.Start()
		defer delegator.Stop()

		deps.Reports = dbStorage.Reports
		deps.Operator = delegator
	} else {
		logrus.Info("report storage disabled")
	}

	svc := service.NewService(deps)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
			Models: status.ModelState{
				CategoryModel: models.Category != nil,
				DefaultModel:  models.Default != nil,
			},
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
