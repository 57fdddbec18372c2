/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package parser

// renpyKeywords is the hand-maintained set of first-word tokens that
// must never be captured as a dialogue speaker. It covers the Ren'Py
// statement keywords plus the screen-language keywords that commonly
// appear as `keyword "string"`. Treated as configuration data, not
// derived from any grammar.
var renpyKeywords = map[string]struct{}{
	// Core Ren'Py statements
	"jump":     {},
	"call":     {},
	"return":   {},
	"scene":    {},
	"show":     {},
	"hide":     {},
	"with":     {},
	"play":     {},
	"stop":     {},
	"queue":    {},
	"voice":    {},
	"define":   {},
	"default":  {},
	"init":     {},
	"python":   {},
	"label":    {},
	"menu":     {},
	"if":       {},
	"elif":     {},
	"else":     {},
	"while":    {},
	"for":      {},
	"pass":     {},
	"image":    {},
	"transform": {},
	"screen":   {},
	"style":    {},
	"translate": {},
	"pause":    {},
	"nvl":      {},
	"window":   {},
	"camera":   {},
	"at":       {},
	"extend":   {},
	"narrator": {},
	"rpy":      {},
	// Screen language keywords
	"add":              {},
	"text":             {},
	"textbutton":       {},
	"key":              {},
	"use":              {},
	"scrollbars":       {},
	"layout":           {},
	"id":               {},
	"variant":          {},
	"style_prefix":     {},
	"size_group":       {},
	"thumb":            {},
	"color":            {},
	"insensitive_color": {},
	"font":             {},
	"background":       {},
	"foreground":       {},
}

// BuiltinImages are the image names Ren'Py provides without an explicit
// `image` definition. Note that `white` is not among them.
var BuiltinImages = map[string]struct{}{
	"black": {},
	"text":  {},
	"vtext": {},
}

// IsKeyword reports whether word is a reserved Ren'Py keyword.
func IsKeyword(word string) bool {
	_, ok := renpyKeywords[word]
	return ok
}

// IsBuiltinImage reports whether name is an implicit builtin image.
func IsBuiltinImage(name string) bool {
	_, ok := BuiltinImages[name]
	return ok
}

// sceneStopWords terminate the space-joined image name of a scene/show
// statement.
var sceneStopWords = map[string]struct{}{
	"with":     {},
	"at":       {},
	"behind":   {},
	"onlayer":  {},
	"zorder":   {},
	"as":       {},
	"transform": {},
}
