package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benmeehan/accident-agent/internal/constants"
	"github.com/benmeehan/accident-agent/internal/service_registry"
	"github.com/benmeehan/accident-agent/internal/utils"
	"github.com/benmeehan/accident-agent/pkg/file"
	"github.com/benmeehan/accident-agent/pkg/identity"
	"github.com/rs/zerolog"
)

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration, falling back to defaults when the file is absent
	config, err := utils.LoadConfig(constants.DefaultConfigFile, fileClient)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger, logCloser, err := utils.NewLogger(config.Logging.Level, config.Logging.File, os.Stdout, fileClient)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logCloser.Close()

	vehicleInfo := identity.NewVehicleInfo(config.Vehicle.IdentityFile, fileClient)
	if err := vehicleInfo.LoadVehicleInfo(); err != nil {
		logger.Error().Err(err).Msg("Failed to load vehicle identity")
	}

	serviceRegistry := service_registry.NewServiceRegistry(logger)
	defer func() {
		if err := serviceRegistry.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to release resources")
		}
	}()

	accidentService, err := service_registry.NewBuilder(serviceRegistry, fileClient).BuildAccidentService(config, vehicleInfo)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build accident service")
		return
	}

	if config.Storage.RestoreOnStart {
		// Failure is logged by the service, the agent starts with an empty log
		_ = accidentService.LoadLog()
	}

	if !config.Detection.Continuous {
		detected, err := accidentService.RunOnce(context.Background())
		if err != nil {
			logger.Error().Err(err).Msg("Detection run failed")
			return
		}
		logger.Info().Bool("detected", detected).Msg("Detection run complete")
		return
	}

	serviceRegistry.RegisterService("accident", accidentService)
	if err := serviceRegistry.StartServices(); err != nil {
		logger.Error().Err(err).Msg("Failed to start services")
		return
	}
	logger.Info().Msg("All services started successfully")

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")
	if err := serviceRegistry.StopServices(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop services")
	}
}
