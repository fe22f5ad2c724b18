package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/heshanpadmasiri/groovyast/builder"
)

const configFileName = "Config.toml"

// config represents build configuration
type config struct {
	ScriptClassName string   `toml:"script_class_name"`
	Strict          bool     `toml:"strict"`
	Format          string   `toml:"format"`
	Include         []string `toml:"include"`
}

func defaultConfig() config {
	return config{
		ScriptClassName: builder.DefaultScriptClassName,
		Format:          formatYAML,
	}
}

// loadConfig loads build configuration from Config.toml in the working
// directory
func loadConfig() config {
	wd, err := os.Getwd()
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFrom(wd)
}

func loadConfigFrom(dir string) config {
	c := defaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		// Config file doesn't exist, return defaults
		return c
	}

	var fileConfig config
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		// Invalid TOML, return defaults
		return c
	}

	if fileConfig.ScriptClassName != "" {
		c.ScriptClassName = fileConfig.ScriptClassName
	}
	if fileConfig.Format != "" {
		c.Format = fileConfig.Format
	}
	if len(fileConfig.Include) > 0 {
		c.Include = fileConfig.Include
	}
	c.Strict = fileConfig.Strict

	return c
}
