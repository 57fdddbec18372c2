/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package parser

import "regexp"

// Statement patterns. Compiled once at init, shared read-only. The
// classifier tries them in a fixed priority order; several patterns
// are prefixes of others, so the order in classify.go matters.
var (
	reLabel        = regexp.MustCompile(`^(\s*)label\s+(\w+)\s*:`)
	reJumpExpr     = regexp.MustCompile(`^\s+jump\s+expression\s+(.+)`)
	reCallExpr     = regexp.MustCompile(`^\s+call\s+expression\s+(.+)`)
	reJump         = regexp.MustCompile(`^\s+jump\s+(\w+)`)
	reCall         = regexp.MustCompile(`^\s+call\s+(\w+)`)
	reDefault      = regexp.MustCompile(`^\s*default\s+([\w.]+)\s*=\s*(.+)`)
	reDefine       = regexp.MustCompile(`^\s*define\s+([\w.]+)\s*=\s*(.+)`)
	reAssign       = regexp.MustCompile(`^\s*\$\s+([\w.]+)\s*=\s*(.+)`)
	reAugment      = regexp.MustCompile(`^\s*\$\s+([\w.]+)\s*(?:\+|-|\*\*?|//?|%|&|\||\^|<<|>>)=\s*(.+)`)
	reCharacter    = regexp.MustCompile(`^\s*(?:define|default)\s+(\w+)\s*=\s*Character\(\s*"([^"]*)"`)
	reSceneHead    = regexp.MustCompile(`^\s+scene\s+(\S.*)`)
	reShowHead     = regexp.MustCompile(`^\s+show\s+(\S.*)`)
	reImageAssign  = regexp.MustCompile(`^image\s+([\w\s]+?)\s*=\s*(.+)`)
	reImageBlock   = regexp.MustCompile(`^image\s+([\w\s]+?)\s*:`)
	reMusicPlay    = regexp.MustCompile(`^\s+play\s+music\s+"([^"]+)"`)
	reMusicStop    = regexp.MustCompile(`^\s+stop\s+(music|sound|voice|audio|movie)\b`)
	reSoundPlay    = regexp.MustCompile(`^\s+play\s+(sound|voice|audio)\s+"([^"]+)"`)
	reMusicQueue   = regexp.MustCompile(`^\s+queue\s+(music|sound|voice|audio)\s+"([^"]+)"`)
	reVoiceStmt    = regexp.MustCompile(`^\s+voice\s+"([^"]+)"`)
	reMenu         = regexp.MustCompile(`^(\s+)menu\s*:`)
	reMenuChoice   = regexp.MustCompile(`^(\s+)"([^"]+)"(?:\s+if\s+(.+?))?\s*:`)
	reScreenDef    = regexp.MustCompile(`^screen\s+(\w+)`)
	reScreenRef    = regexp.MustCompile(`^\s+(show|call|hide)\s+screen\s+(\w+)`)
	reTransformDef = regexp.MustCompile(`^transform\s+(\w+)`)
	reAtTransform  = regexp.MustCompile(`\bat\s+(\w+)`)
	reTranslate    = regexp.MustCompile(`^translate\s+(\w+)\s+(\w+)\s*:`)
	reDialogue     = regexp.MustCompile(`^(\s+)(\w+)\s+"((?:[^"\\]|\\.)*)"`)
	reDialogueOpen = regexp.MustCompile(`^(\s+)(\w+)\s+"`)
	reCondition    = regexp.MustCompile(`^\s+(?:if|elif)\s+(.+?)\s*:`)
	rePythonCall   = regexp.MustCompile(`^\s*\$\s*\w+\.\w+\s*\(`)
	reBareword     = regexp.MustCompile(`^\w+$`)
)
