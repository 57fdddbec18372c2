/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package parser

import (
	"regexp"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// Kind identifies the statement form a line was classified as.
type Kind int

const (
	// KindNone means the line matched no known statement form
	// (plain prose, unhandled code).
	KindNone Kind = iota
	KindScreenDef
	KindTransformDef
	KindTranslate
	KindLabel
	KindMenu
	KindJumpExpr
	KindCallExpr
	KindScreenRef
	KindJump
	KindCall
	KindCharacter
	KindImage
	KindDefault
	KindDefine
	KindAugment
	KindAssign
	// KindSkip marks a bare `$ obj.method(...)` call that must not be
	// recorded as a variable assignment.
	KindSkip
	KindScene
	KindShow
	KindMusic
	KindCondition
	KindDialogue
)

// statement is the tagged result of classifying one line. Only the
// fields relevant to Kind are set; the rest stay zero.
type statement struct {
	kind        Kind
	name        string // label/screen/transform/variable/image name, speaker, jump target
	value       string // raw RHS text, dynamic expression, condition, dialogue text
	action      string // music or screen-ref action
	displayName string // character display name
	transition  string // scene `with` transition
	atTransform string // `at NAME` clause on scene/show
	language    string // translate block language
	varKind     string // default/define for character definitions
}

// classify decides which single statement form line matches, first
// match wins. The caller guarantees line is non-blank and not a
// comment; indent is the leading-whitespace count. Menu headers return
// KindMenu and are finished by the menu tracker, not here.
func classify(line string, indent int) statement {
	// Top-level definitions fire only at column 0.
	if indent == 0 {
		if m := reScreenDef.FindStringSubmatch(line); m != nil {
			return statement{kind: KindScreenDef, name: m[1]}
		}
		if m := reTransformDef.FindStringSubmatch(line); m != nil {
			return statement{kind: KindTransformDef, name: m[1]}
		}
		if m := reTranslate.FindStringSubmatch(line); m != nil {
			return statement{kind: KindTranslate, language: m[1], name: m[2]}
		}
	}

	if m := reLabel.FindStringSubmatch(line); m != nil {
		return statement{kind: KindLabel, name: m[2]}
	}

	if reMenu.MatchString(line) {
		return statement{kind: KindMenu}
	}

	// Expression-based transfers shadow the plain jump/call patterns.
	if m := reJumpExpr.FindStringSubmatch(line); m != nil {
		return statement{kind: KindJumpExpr, value: strings.TrimSpace(m[1])}
	}
	if m := reCallExpr.FindStringSubmatch(line); m != nil {
		return statement{kind: KindCallExpr, value: strings.TrimSpace(m[1])}
	}

	// `show screen X` is not an image show; check before show/jump/call.
	if m := reScreenRef.FindStringSubmatch(line); m != nil {
		return statement{kind: KindScreenRef, action: m[1], name: m[2]}
	}

	if m := reJump.FindStringSubmatch(line); m != nil {
		return statement{kind: KindJump, name: m[1]}
	}
	if m := reCall.FindStringSubmatch(line); m != nil {
		return statement{kind: KindCall, name: m[1]}
	}

	// Character shorthand emits both a CharacterDef and a Variable.
	if m := reCharacter.FindStringSubmatch(line); m != nil {
		kind := model.VarDefine
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "default") {
			kind = model.VarDefault
		}
		value := ""
		if i := strings.Index(line, "="); i >= 0 {
			value = strings.TrimSpace(line[i+1:])
		}
		return statement{kind: KindCharacter, name: m[1], displayName: m[2], varKind: kind, value: value}
	}

	if m := reImageAssign.FindStringSubmatch(line); m != nil {
		return statement{kind: KindImage, name: strings.TrimSpace(m[1]), value: strings.TrimSpace(m[2])}
	}
	if m := reImageBlock.FindStringSubmatch(line); m != nil {
		return statement{kind: KindImage, name: strings.TrimSpace(m[1])}
	}

	if m := reDefault.FindStringSubmatch(line); m != nil {
		return statement{kind: KindDefault, name: m[1], value: strings.TrimSpace(m[2])}
	}
	if m := reDefine.FindStringSubmatch(line); m != nil {
		return statement{kind: KindDefine, name: m[1], value: strings.TrimSpace(m[2])}
	}

	// Augmented assignment contains `=` too, so it goes first.
	if m := reAugment.FindStringSubmatch(line); m != nil {
		return statement{kind: KindAugment, name: m[1]}
	}

	// A bare method call like `$ obj.method(...)` is not an assignment.
	if rePythonCall.MatchString(line) {
		return statement{kind: KindSkip}
	}
	if m := reAssign.FindStringSubmatch(line); m != nil {
		return statement{kind: KindAssign, name: m[1], value: strings.TrimSpace(m[2])}
	}

	if s, ok := matchDisplayable(line, reSceneHead, true); ok {
		return s
	}
	if s, ok := matchDisplayable(line, reShowHead, false); ok {
		return s
	}

	if m := reMusicPlay.FindStringSubmatch(line); m != nil {
		return statement{kind: KindMusic, action: "play", value: m[1]}
	}
	if m := reMusicStop.FindStringSubmatch(line); m != nil {
		return statement{kind: KindMusic, action: "stop"}
	}
	if m := reSoundPlay.FindStringSubmatch(line); m != nil {
		return statement{kind: KindMusic, action: m[1], value: m[2]}
	}
	if m := reMusicQueue.FindStringSubmatch(line); m != nil {
		return statement{kind: KindMusic, action: "queue", value: m[2]}
	}
	if m := reVoiceStmt.FindStringSubmatch(line); m != nil {
		return statement{kind: KindMusic, action: "voice", value: m[1]}
	}

	if m := reCondition.FindStringSubmatch(line); m != nil {
		return statement{kind: KindCondition, value: m[1]}
	}

	if m := reDialogue.FindStringSubmatch(line); m != nil {
		if !IsKeyword(m[2]) {
			return statement{kind: KindDialogue, name: m[2], value: m[3]}
		}
		return statement{kind: KindNone}
	}
	// Unterminated opening quote: keep the speaker, drop the text, so a
	// dangling string does not silently lose the record.
	if m := reDialogueOpen.FindStringSubmatch(line); m != nil {
		if !IsKeyword(m[2]) {
			return statement{kind: KindDialogue, name: m[2]}
		}
	}

	return statement{kind: KindNone}
}

// matchDisplayable parses `scene NAME... [with T]` / `show NAME...`.
// The image name is a space-joined run of bareword tokens terminated by
// any reserved trailing keyword; an `at NAME` anywhere on the line is
// captured as a transform reference.
func matchDisplayable(line string, re *regexp.Regexp, withTransition bool) (statement, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return statement{}, false
	}
	fields := strings.Fields(m[1])
	var name []string
	i := 0
	for ; i < len(fields); i++ {
		tok := fields[i]
		if _, stop := sceneStopWords[tok]; stop || !reBareword.MatchString(tok) {
			break
		}
		name = append(name, tok)
	}
	if len(name) == 0 {
		return statement{}, false
	}

	s := statement{name: strings.Join(name, " ")}
	if withTransition {
		s.kind = KindScene
		if i+1 < len(fields) && fields[i] == "with" && reBareword.MatchString(fields[i+1]) {
			s.transition = fields[i+1]
		}
	} else {
		s.kind = KindShow
	}
	if at := reAtTransform.FindStringSubmatch(line); at != nil {
		s.atTransform = at[1]
	}
	return s, true
}
