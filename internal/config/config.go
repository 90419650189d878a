package config

// Config bundles every configuration surface used by the application.
// It is constructed once at startup and handed by reference to the
// components that need it; nothing reads the environment after that.
type Config interface {
	EnvConfig
	GenukaConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDatabasePath() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Genuka
	Security
}

func New() Config {
	return mainConfig{}
}
