package config

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Output:             "output.xlsx",
		CacheMode:          "FAST_MAP",
		UseStyles:          true,
		DefaultColumnWidth: 15,
	}
}
