package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// StatsFeedSourceType is the hosted stats feed API
	StatsFeedSourceType SourceType = "stats_feed"
	// LocalFileSourceType reads exported JSON fixtures from disk
	LocalFileSourceType SourceType = "local_file"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new data source factory
func NewFactory(logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{logger: logger}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.SourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	switch SourceType(cfg.Name) {
	case StatsFeedSourceType:
		if httpClient == nil {
			return nil, fmt.Errorf("HTTP client is required for the stats feed source")
		}
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("stats feed base URL is required")
		}
		return NewStatsFeedClient(httpClient, cfg.BaseURL, cfg.APIKey, cfg.Enabled, f.logger), nil

	case LocalFileSourceType:
		if cfg.Path == "" {
			return nil, fmt.Errorf("local file source path is required")
		}
		return NewLocalFileSource(cfg.Path, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Name)
	}
}

// NewDataSources creates all enabled data sources from configuration
func (f *Factory) NewDataSources(dsCfg config.DatasourceConfig, httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	var sources []DataSource

	for _, srcCfg := range dsCfg.Sources {
		if !srcCfg.Enabled {
			f.logger.Infof("Skipping disabled data source: %s", srcCfg.Name)
			continue
		}

		source, err := f.NewDataSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		f.logger.Infof("Created data source: %s", srcCfg.Name)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}
