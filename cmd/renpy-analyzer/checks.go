/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wintersta7e/renpy-analyzer/internal/checks"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the available analysis checks",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range checks.All() {
			fmt.Printf("%-14s %s\n", c.ID, c.DisplayName)
		}
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
