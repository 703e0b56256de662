// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/common"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "swiss",
		Short: "Run a Swiss-system tournament",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logrus.SetLevel(config.LogLevel())

			// If --debug or --trace flag is provided, raise the logging level.
			if cmd.Flag("debug").Changed {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			cmd.SetContext(withConfig(cmd.Context(), config))
			return nil
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Swiss's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().BoolP("debug", "d", false, "Show Debug Information")

	root.PersistentFlags().String("config", common.ConfigFile, "Path of the config file")
	root.PersistentFlags().String("store", "", "Store driver: sqlite, postgres, redis or memory")
	root.PersistentFlags().String("dsn", "", "Database file, connection string or address for the store")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Register())
	root.AddCommand(Count())
	root.AddCommand(Report())
	root.AddCommand(Standings())
	root.AddCommand(Pairings())
	root.AddCommand(Delete())

	return root
}
