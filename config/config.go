package config

type Defaults interface {
	Defaults() map[string]any
}

type Validator interface {
	Validate() error
}

type Manager interface {
	Init() error
	Config() *Config
	Save() error
	ConfigFile() string
}
