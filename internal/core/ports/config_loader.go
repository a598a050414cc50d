package ports

import "go.trai.ch/crate/internal/core/domain"

// ConfigLoader defines the interface for loading the cratefile.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the cratefile at path and returns one build request per
	// configured tool. Executable names are validated to be unique.
	Load(path string) ([]domain.BuildRequest, error)
}
