// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the streamjob command line driver.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"code.hybscloud.com/stream"
	"code.hybscloud.com/stream/jobs"
)

// app is the state shared by the commands of one command tree.
type app struct {
	v        *viper.Viper
	log      *logrus.Logger
	registry *stream.Registry
	settings Settings
}

// New returns the root command with every subcommand attached.
func New() *cobra.Command {
	a := &app{
		v:        viper.New(),
		log:      logrus.New(),
		registry: jobs.NewRegistry(),
	}
	cmd := &cobra.Command{
		Use:   "streamjob",
		Short: "Run streaming jobs and print their events",
		Long: `streamjob starts a streaming job on a worker goroutine, feeds it input
and prints every event it emits as a JSON line on stdout.
The last line is always the terminal event, "close" or "error".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	fs := cmd.PersistentFlags()
	fs.StringP("config", "c", "", "config file (default is ./streamjob.yaml)")
	fs.String("log-level", defaultLogLevel, "log level: trace, debug, info, warn, error")
	fs.String("log-format", defaultLogFormat, "log format: text or json")
	cmd.AddCommand(a.listCmd(), a.runCmd(), a.pipeCmd())
	return cmd
}

// init loads settings and configures the logger before any subcommand runs.
func (a *app) init(cmd *cobra.Command) error {
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	s, err := loadSettings(a.v)
	if err != nil {
		return err
	}
	a.settings = s
	return configureLogger(a.log, s.Log, cmd.ErrOrStderr())
}
