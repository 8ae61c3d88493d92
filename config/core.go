package config

var _ Validator = (*CoreConfig)(nil)

type CoreConfig struct {
	DB   DatabaseConfig `mapstructure:"db"`
	Log  LogConfig      `mapstructure:"log"`
	Mail MailConfig     `mapstructure:"mail"`
}

func (c CoreConfig) Validate() error {
	return nil
}
