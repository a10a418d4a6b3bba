package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/jobboard-finder/internal/config"
	"github.com/jonathan/jobboard-finder/internal/detect"
	"github.com/jonathan/jobboard-finder/internal/fetch"
	"github.com/jonathan/jobboard-finder/internal/pipeline"
	"github.com/jonathan/jobboard-finder/internal/registry"
)

// loadRegistry returns the built-in registry, or the one described by a vendors file.
func loadRegistry(vendorsFile string) (*registry.Registry, error) {
	if vendorsFile == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadFile(vendorsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendors: %w", err)
	}
	return reg, nil
}

// pipelineOptions maps configuration onto row processing options.
func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Mode:         pipeline.Mode(cfg.Mode),
		MissingURL:   pipeline.MissingURLPolicy(cfg.MissingURL),
		FollowFrames: !cfg.SkipFrames,
		Delay:        cfg.Delay(),
	}
}

func newPipeline(cfg config.Config, reg *registry.Registry, logger *zap.SugaredLogger) *pipeline.Pipeline {
	fetcher := fetch.NewCachedFetcher(fetch.NewHTTPFetcher(cfg.FetchOptions(), logger))
	return pipeline.New(detect.NewScanner(reg), fetcher, pipelineOptions(cfg), logger)
}
