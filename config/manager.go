package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const DefaultEnvPrefix = "QUEUEMAILER_"

var (
	configFilePaths = []string{
		"/etc/lumeweb/queuemailer/config.yaml",
		"/etc/lumeweb/queuemailer/config.yml",
		"$HOME/.lumeweb/queuemailer/config.yaml",
		"$HOME/.lumeweb/queuemailer/config.yml",
		"./queuemailer.yaml",
		"./queuemailer.yml",
	}
	errConfigFileNotFound = errors.New("config file not found")
)

var _ Manager = (*ManagerDefault)(nil)

type Config struct {
	Core CoreConfig `mapstructure:"core"`
}

type ManagerOption func(*ManagerDefault)

// ManagerWithConfigFile pins the config file instead of searching the default paths.
func ManagerWithConfigFile(file string) ManagerOption {
	return func(m *ManagerDefault) {
		m.configFile = file
	}
}

func ManagerWithEnvPrefix(prefix string) ManagerOption {
	return func(m *ManagerDefault) {
		m.envPrefix = prefix
	}
}

type ManagerDefault struct {
	config     *koanf.Koanf
	root       *Config
	changes    bool
	configFile string
	envPrefix  string
}

func NewManager(opts ...ManagerOption) (*ManagerDefault, error) {
	m := &ManagerDefault{envPrefix: DefaultEnvPrefix}

	for _, opt := range opts {
		opt(m)
	}

	k, err := newConfig(m.ConfigFile())
	if err != nil && !errors.Is(err, errConfigFileNotFound) {
		return nil, err
	}

	m.config = k
	m.changes = err != nil

	return m, nil
}

func (m *ManagerDefault) Init() error {
	m.root = &Config{}

	err := m.setDefaultsForObject(m.root.Core, "core")
	if err != nil {
		return err
	}
	err = m.maybeSave()
	if err != nil {
		return err
	}

	// Environment overrides are applied on a copy so they never end up in the saved file.
	merged := m.config.Copy()
	if m.envPrefix != "" {
		err = merged.Load(env.Provider(m.envPrefix, ".", m.envKey), nil)
		if err != nil {
			return err
		}
	}

	err = merged.UnmarshalWithConf("", m.root, koanf.UnmarshalConf{
		Tag: "mapstructure",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
			Metadata:         nil,
			Result:           m.root,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return err
	}

	return m.validateObject(m.root)
}

func (m *ManagerDefault) envKey(s string) string {
	s = strings.TrimPrefix(s, m.envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

func (m *ManagerDefault) setDefaultsForObject(obj any, prefix string) error {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	if setter, ok := obj.(Defaults); ok {
		err := m.applyDefaults(setter, prefix)
		if err != nil {
			return err
		}
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)
		fieldType := objType.Field(i)

		if !field.CanInterface() || field.Kind() != reflect.Struct {
			continue
		}

		newPrefix := prefix
		if tag := fieldType.Tag.Get("mapstructure"); tag != "" && tag != "-" {
			if newPrefix != "" {
				newPrefix += "."
			}
			newPrefix += tag
		}

		err := m.setDefaultsForObject(field.Interface(), newPrefix)
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *ManagerDefault) validateObject(obj any) error {
	objValue := reflect.ValueOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
	}

	if validator, ok := obj.(Validator); ok {
		err := validator.Validate()
		if err != nil {
			return err
		}
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)

		if !field.CanInterface() || field.Kind() != reflect.Struct {
			continue
		}

		err := m.validateObject(field.Interface())
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *ManagerDefault) applyDefaults(setter Defaults, prefix string) error {
	for key, value := range setter.Defaults() {
		fullKey := key
		if prefix != "" {
			fullKey = fmt.Sprintf("%s.%s", prefix, key)
		}

		ret, err := m.setDefault(fullKey, value)
		if err != nil {
			return err
		}

		if ret {
			m.changes = true
		}
	}

	return nil
}

func (m *ManagerDefault) setDefault(key string, value any) (bool, error) {
	if !m.config.Exists(key) {
		err := m.config.Set(key, value)
		if err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

func (m *ManagerDefault) maybeSave() error {
	if !m.changes {
		return nil
	}

	data, err := m.config.Marshal(yaml.Parser())
	if err != nil {
		return err
	}

	configFile := m.configFile
	if configFile == "" {
		configFile = findConfigFile(true, true)
	}

	err = os.MkdirAll(path.Dir(configFile), 0755)
	if err != nil {
		return err
	}

	err = os.WriteFile(configFile, data, 0644)
	if err != nil {
		return err
	}

	m.changes = false

	return nil
}

func (m *ManagerDefault) Config() *Config {
	return m.root
}

func (m *ManagerDefault) Save() error {
	m.changes = true
	return m.maybeSave()
}

func (m *ManagerDefault) ConfigFile() string {
	if m.configFile != "" {
		return m.configFile
	}

	return findConfigFile(false, false)
}

func newConfig(configFile string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if configFile == "" {
		return k, errConfigFileNotFound
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return k, errConfigFileNotFound
	}

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, err
	}

	return k, nil
}

func findConfigFile(dirCheck bool, ignoreExist bool) string {
	for _, _path := range configFilePaths {
		expandedPath := os.ExpandEnv(_path)
		_, err := os.Stat(expandedPath)
		if err == nil {
			return expandedPath
		}

		if os.IsNotExist(err) && dirCheck {
			_, err := os.Stat(path.Dir(expandedPath))
			if err == nil || ignoreExist {
				return expandedPath
			}
		}
	}

	return ""
}
