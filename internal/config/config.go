// Copyright 2026 The zsetd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"flag"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the set of knobs zsetd needs at startup. It follows the
// teacher's layering: flags provide defaults, an optional YAML file
// overrides them.
type Config struct {
	BindAddr         string `yaml:"BindAddr"`
	Port             uint16 `yaml:"Port"`
	Shards           int    `yaml:"Shards"`
	MaxPackedEntries int    `yaml:"MaxPackedEntries"`
	MaxPackedValue   int    `yaml:"MaxPackedValue"`
	LogLevel         string `yaml:"LogLevel"`
	ConfigFile       string `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		BindAddr:         "localhost",
		Port:             7496,
		Shards:           1,
		MaxPackedEntries: 128,
		MaxPackedValue:   64,
		LogLevel:         "info",
	}
}

// GetConfig parses flags (falling back to DefaultConfig's values) and, when
// -config points at a YAML file, overlays its contents on top.
func GetConfig() (Config, error) {
	conf := DefaultConfig()

	flag.StringVar(&conf.BindAddr, "bind-addr", conf.BindAddr, "Address to bind the server to.")
	port := flag.Int("port", int(conf.Port), "Port to listen on.")
	shards := flag.Int("shards", conf.Shards, "Number of shard executors.")
	flag.StringVar(&conf.LogLevel, "log-level", conf.LogLevel, "Log verbosity (debug|info|error).")
	flag.StringVar(&conf.ConfigFile, "config", "", "Path to a YAML config file overriding the flags above.")
	flag.Parse()

	conf.Port = uint16(*port)
	conf.Shards = *shards

	if conf.ConfigFile == "" {
		return conf, nil
	}

	data, err := os.ReadFile(conf.ConfigFile)
	if err != nil {
		return conf, err
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, err
	}
	return conf, nil
}
