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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asgardeo/forge/internal/formula"
	"github.com/asgardeo/forge/internal/job/jobtypes"
	pagemodel "github.com/asgardeo/forge/internal/page/model"
)

const defaultActor = "forge-cli"

func newApplicationCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Manage builder applications",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a builder application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, svcErr := opts.services.applications.CreateApplication(name)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), app)
		},
	}
	create.Flags().StringVar(&name, "name", "", "application name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List builder applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, svcErr := opts.services.applications.GetApplicationList()
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), apps)
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func newPageCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage the pages of builder applications",
	}

	var (
		appID      int64
		name, path string
		beforeID   int64
		pageID     int64
		user       string
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, svcErr := opts.services.pages.CreatePage(appID, pagemodel.CreatePageRequest{
				Name:     name,
				Path:     path,
				BeforeID: optionalID(beforeID),
			}, defaultActor)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), page)
		},
	}
	create.Flags().Int64Var(&appID, "app", 0, "application id")
	create.Flags().StringVar(&name, "name", "", "page name")
	create.Flags().StringVar(&path, "path", "", "page path")
	create.Flags().Int64Var(&beforeID, "before", 0, "id of the page to place the new page before")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the pages of an application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, svcErr := opts.services.pages.GetPages(appID)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), pages)
		},
	}
	list.Flags().Int64Var(&appID, "app", 0, "application id")

	duplicate := &cobra.Command{
		Use:   "duplicate",
		Short: "Duplicate a page with its data sources and elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := json.Marshal(map[string]int64{"page_id": pageID})
			if err != nil {
				return err
			}
			job, svcErr := opts.services.jobs.CreateAndStartJob(user, jobtypes.DuplicatePageType, params)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), job)
		},
	}
	duplicate.Flags().Int64Var(&pageID, "page", 0, "id of the page to duplicate")
	duplicate.Flags().StringVar(&user, "user", defaultActor, "user running the job")

	cmd.AddCommand(create, list, duplicate)
	return cmd
}

func newElementsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "Manage the elements of a page",
	}

	var pageID, elementID, beforeID int64

	list := &cobra.Command{
		Use:   "list",
		Short: "List the elements of a page in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, svcErr := opts.services.elements.GetElements(pageID)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), elements)
		},
	}
	list.Flags().Int64Var(&pageID, "page", 0, "page id")

	recalculate := &cobra.Command{
		Use:   "recalculate",
		Short: "Renumber the element orders of a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if svcErr := opts.services.elements.RecalculateFullOrders(pageID, defaultActor); svcErr != nil {
				return commandError(svcErr)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Element orders of page %d recalculated.\n", pageID)
			return err
		},
	}
	recalculate.Flags().Int64Var(&pageID, "page", 0, "page id")

	move := &cobra.Command{
		Use:   "move",
		Short: "Move an element before another element, or last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			element, svcErr := opts.services.elements.MoveElement(elementID, optionalID(beforeID), defaultActor)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), element)
		},
	}
	move.Flags().Int64Var(&elementID, "element", 0, "id of the element to move")
	move.Flags().Int64Var(&beforeID, "before", 0, "id of the element to place it before; last when omitted")

	cmd.AddCommand(list, recalculate, move)
	return cmd
}

func newDataSourceCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasource",
		Short: "Dispatch the data sources of a page",
	}

	var (
		pageID int64
		params string
	)
	dispatch := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch every data source of a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pageParams, err := parseParams(params)
			if err != nil {
				return err
			}
			results, svcErr := opts.services.dataSources.DispatchPageDataSources(pageID, pageParams)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	dispatch.Flags().Int64Var(&pageID, "page", 0, "page id")
	dispatch.Flags().StringVar(&params, "params", "", "page parameters as a JSON object")

	cmd.AddCommand(dispatch)
	return cmd
}

func newServiceCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Dispatch and export data services",
	}

	var (
		serviceID int64
		params    string
	)

	dispatch := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch a service and print its payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pageParams, err := parseParams(params)
			if err != nil {
				return err
			}
			service, svcErr := opts.services.services.GetService(serviceID)
			if svcErr != nil {
				return commandError(svcErr)
			}
			result, svcErr := opts.services.services.DispatchService(service,
				formula.MapContext{"page_parameter": pageParams})
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), result.Payload)
		},
	}
	dispatch.Flags().Int64Var(&serviceID, "service", 0, "service id")
	dispatch.Flags().StringVar(&params, "params", "", "page parameters as a JSON object")

	export := &cobra.Command{
		Use:   "export",
		Short: "Print the serialized form of a service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, svcErr := opts.services.services.GetService(serviceID)
			if svcErr != nil {
				return commandError(svcErr)
			}
			serialized, svcErr := opts.services.services.ExportService(service)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), serialized)
		},
	}
	export.Flags().Int64Var(&serviceID, "service", 0, "service id")

	cmd.AddCommand(dispatch, export)
	return cmd
}

func newJobCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Inspect jobs",
	}

	var (
		jobID int64
		user  string
	)
	get := &cobra.Command{
		Use:   "get",
		Short: "Print a job of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, svcErr := opts.services.jobs.GetJob(user, jobID)
			if svcErr != nil {
				return commandError(svcErr)
			}
			return writeJSON(cmd.OutOrStdout(), job)
		},
	}
	get.Flags().Int64Var(&jobID, "job", 0, "job id")
	get.Flags().StringVar(&user, "user", defaultActor, "user owning the job")

	cmd.AddCommand(get)
	return cmd
}
