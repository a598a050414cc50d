package config

// Cratefile represents the structure of the crate.yaml configuration file.
type Cratefile struct {
	Version string             `yaml:"version"`
	Tools   map[string]ToolDTO `yaml:"tools"`
}

// ToolDTO represents one packaged tool in the configuration. The map key is
// the executable name.
type ToolDTO struct {
	Entry        string   `yaml:"entry"`
	Icon         string   `yaml:"icon"`
	Requirements string   `yaml:"requirements"`
	Args         []string `yaml:"args"`
	Timeout      string   `yaml:"timeout"`
}
