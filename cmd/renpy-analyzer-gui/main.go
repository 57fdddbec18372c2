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
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Wintersta7e/renpy-analyzer/internal/crash"
	applog "github.com/Wintersta7e/renpy-analyzer/internal/log"
	"github.com/Wintersta7e/renpy-analyzer/internal/ui"
	"github.com/Wintersta7e/renpy-analyzer/internal/version"
)

func usage() {
	fmt.Println("Ren'Py Analyzer — desktop UI")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  renpy-analyzer-gui [<project-dir>]   Launch the UI, optionally analyzing <project-dir> right away")
	fmt.Println("  renpy-analyzer-gui version           Show version")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("gui")
	defer crash.Recover()

	args := os.Args
	var dir string
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Ren'Py Analyzer — desktop UI")
			fmt.Println(version.String())
			return
		case "help", "--help", "-h":
			usage()
			return
		default:
			abs, err := filepath.Abs(args[1])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(2)
			}
			dir = abs
		}
	}

	l.Debug("start", slog.String("project", dir))
	if err := ui.Run(dir); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
