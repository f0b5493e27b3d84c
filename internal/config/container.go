package config

import (
	"time"

	"pdf-processing-service/internal/domain"
	"pdf-processing-service/internal/service"
	"pdf-processing-service/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	Gate            domain.AdmissionGate
	PipelineService domain.PipelineService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFormat())

	gate := service.NewAdmissionGate()
	renderer := service.NewPageRenderer(appLogger)
	normalizer := service.NewImageNormalizer()
	client := service.NewParsingClient(time.Duration(config.GetRequestTimeout())*time.Second, appLogger)
	pipeline := service.NewPipeline(renderer, normalizer, client, appLogger)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		Gate:            gate,
		PipelineService: pipeline,
	}
}
