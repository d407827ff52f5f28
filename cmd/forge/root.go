/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asgardeo/forge/internal/system/error/serviceerror"
	healthmodel "github.com/asgardeo/forge/internal/system/healthcheck/model"
)

// rootOptions holds the global flags and the services built for the running command.
type rootOptions struct {
	home     string
	services *serviceManager
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "forge",
		Short:         "Forge builder backend",
		Long:          "Manage the pages, elements, data sources and services of forge builder applications.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.home == "" {
				dir, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current working directory: %w", err)
				}
				opts.home = dir
			}
			cfg, err := loadConfig(opts.home)
			if err != nil {
				return err
			}
			opts.services, err = newServiceManager(opts.home, cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.services != nil {
				opts.services.close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.home, "home", "", "forge home directory (defaults to the working directory)")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newHealthCommand(opts))
	cmd.AddCommand(newApplicationCommand(opts))
	cmd.AddCommand(newPageCommand(opts))
	cmd.AddCommand(newElementsCommand(opts))
	cmd.AddCommand(newDataSourceCommand(opts))
	cmd.AddCommand(newServiceCommand(opts))
	cmd.AddCommand(newJobCommand(opts))

	return cmd
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.services.migrate(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date.")
			return err
		},
	}
}

func newHealthCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the databases are ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status := opts.services.health.CheckReadiness()
			if err := writeJSON(cmd.OutOrStdout(), status); err != nil {
				return err
			}
			if status.Status != healthmodel.StatusUp {
				return errors.New("forge is not ready")
			}
			return nil
		},
	}
}

// writeJSON prints a value as indented JSON.
func writeJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// commandError turns a service error into a command error.
func commandError(svcErr *serviceerror.ServiceError) error {
	return fmt.Errorf("%s: %s", svcErr.Code, svcErr.Message())
}

// optionalID returns nil for an unset id flag.
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func parseParams(raw string) (map[string]interface{}, error) {
	params := map[string]interface{}{}
	if raw == "" {
		return params, nil
	}
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("the parameters must be a JSON object: %w", err)
	}
	return params, nil
}
