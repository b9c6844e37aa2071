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
//
// Shows whether a given user-agent / URL combination is allowed or
// disallowed by a given robots.txt file, based on the gorobots/robotstxt
// decision library.
// Usage:
//     robotscheck [--config FILE] [--no-color] <robots.txt path> <user-agents> <url>
// Arguments:
// robots.txt path: local path to a file containing robots.txt records.
// user-agents: a token to be matched against records in the robots.txt, or
//   a comma-separated list of user agents.
// url: a url to be matched against records in the robots.txt.
// Returns: prints a sentence with the verdict, and exits 0 if allowed, 1 if
// disallowed, or 2 otherwise (bad invocation, missing file, bad config).

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gorobots/robotstxt"
)

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "robotscheck <robots.txt path> <user-agents> <url>",
	Short: "Check whether a URL is allowed by a robots.txt file.",
	Long: `robotscheck evaluates a local robots.txt file against one or more
user-agent tokens and a URL, using the gorobots/robotstxt decision library
(the draft-koster-rep exclusion protocol plus the common operator
extensions: wildcards, end-anchor, and typo-tolerant directive keys).`,
	Args: requireArgs(3),
	RunE: runCheck,
}

// requireArgs wraps cobra.ExactArgs so an arity mismatch is reported as
// ErrBadInvocation, the same sentinel used for the CLI's other
// invocation-level failures.
func requireArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrBadInvocation, err)
		}
		return nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default agents, color toggle)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized ALLOWED/DISALLOWED output")
}

// Execute runs the root command and terminates the process with the exit
// code documented in SPEC_FULL.md §4.9: 0 allowed, 1 disallowed, 2 bad
// invocation.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	robotsPath, agentArg, url := args[0], args[1], args[2]

	var cfg Config
	if cfgFile != "" {
		var err error
		cfg, err = WithConfigFile(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(2)
		}
	}

	body, err := os.ReadFile(robotsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %s\n", ErrRobotsFileDoesNotExist, robotsPath)
		os.Exit(2)
	}

	agents := splitAgents(agentArg)
	if len(agents) == 0 {
		agents = cfg.Agents
	}
	if len(agents) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s: no user-agent given and no default in --config\n", ErrBadInvocation)
		os.Exit(2)
	}

	allowed := robotstxt.Allowed(string(body), agents, url)

	disableColor := noColor || cfg.NoColor
	verdict := renderVerdict(allowed, disableColor)
	fmt.Fprintf(os.Stdout, "user-agent %q with URL %q: %s\n", agentArg, url, verdict)
	if len(body) == 0 {
		fmt.Fprintln(os.Stdout, "notice: robots.txt is empty, so everything is allowed")
	}

	if !allowed {
		os.Exit(1)
	}
	return nil
}

func splitAgents(arg string) []string {
	var agents []string
	for _, a := range strings.Split(arg, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			agents = append(agents, a)
		}
	}
	return agents
}

func renderVerdict(allowed, disableColor bool) string {
	if disableColor {
		if allowed {
			return "ALLOWED"
		}
		return "DISALLOWED"
	}
	if allowed {
		return color.GreenString("ALLOWED")
	}
	return color.RedString("DISALLOWED")
}
