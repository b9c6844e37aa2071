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

import "errors"

var (
	ErrConfigFileDoesNotExist = errors.New("config file does not exist")
	ErrConfigParsingFail      = errors.New("failed to parse config file")
	ErrRobotsFileDoesNotExist = errors.New("robots.txt file does not exist")
	ErrBadInvocation          = errors.New("invalid amount of arguments")
)
