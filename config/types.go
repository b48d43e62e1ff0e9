package config

// Config represents the complete configuration structure
type Config struct {
	Fakturo FakturoConfig `mapstructure:"fakturo"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FakturoConfig holds Fakturo API connection details
type FakturoConfig struct {
	URL      string `mapstructure:"url"`
	APIKey   string `mapstructure:"api_key"`
	Login    string `mapstructure:"login"`
	Password string `mapstructure:"password"`
	Timeout  int    `mapstructure:"timeout"`
}

// FilterConfig contains filter definitions
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]Preset `mapstructure:"presets"`
}

// Preset is a named, reusable filter expression
type Preset struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// OutputConfig contains display settings
type OutputConfig struct {
	ShowDetails bool   `mapstructure:"show_details"`
	ExportDir   string `mapstructure:"export_dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
