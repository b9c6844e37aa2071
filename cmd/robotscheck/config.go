// Copyright 2020 Jim Smart
// Copyright 1999 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML file loaded via --config. It supplies a house
// default for the user-agent list, used when the user-agents argument is
// empty, and a switch to force-disable color output.
type Config struct {
	Agents  []string `yaml:"agents"`
	NoColor bool     `yaml:"no_color"`
}

// WithConfigFile reads and parses a YAML config file. A missing file is
// reported as ErrConfigFileDoesNotExist (with the path); malformed YAML as
// ErrConfigParsingFail (with the parser's message). Both wrap their
// sentinel for errors.Is; the underlying error itself is not wrapped.
func WithConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileDoesNotExist, path)
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigParsingFail, err)
	}
	return cfg, nil
}
