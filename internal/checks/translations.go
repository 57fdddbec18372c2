/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package checks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Wintersta7e/renpy-analyzer/internal/model"
)

// CheckTranslations reports duplicate translation blocks within one
// language and, when a project carries two or more languages, strings
// one language has that another is missing.
func CheckTranslations(proj *model.Project) []model.Finding {
	var findings []model.Finding
	if len(proj.Translations) == 0 {
		return findings
	}

	byLanguage := make(map[string][]model.TranslationBlock)
	for _, t := range proj.Translations {
		byLanguage[t.Language] = append(byLanguage[t.Language], t)
	}

	languages := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	for _, lang := range languages {
		seen := make(map[string][]model.TranslationBlock)
		var idOrder []string
		for _, t := range byLanguage[lang] {
			if _, ok := seen[t.StringID]; !ok {
				idOrder = append(idOrder, t.StringID)
			}
			seen[t.StringID] = append(seen[t.StringID], t)
		}
		for _, id := range idOrder {
			entries := seen[id]
			if len(entries) < 2 {
				continue
			}
			locs := make([]string, len(entries))
			for i, e := range entries {
				locs[i] = fmt.Sprintf("%s:%d", e.File, e.Line)
			}
			findings = append(findings, model.Finding{
				Severity:  model.SeverityMedium,
				CheckName: "translations",
				Title:     fmt.Sprintf("Duplicate translation '%s' (%s)", id, lang),
				Description: fmt.Sprintf(
					"Translation for '%s' in language '%s' is defined %d times: %s. Only the last definition will be used.",
					id, lang, len(entries), strings.Join(locs, ", ")),
				File:       entries[0].File,
				Line:       entries[0].Line,
				Suggestion: "Remove duplicate translation blocks.",
			})
		}
	}

	if len(languages) < 2 {
		return findings
	}

	idsByLang := make(map[string]map[string]struct{})
	allIDs := make(map[string]struct{})
	for _, lang := range languages {
		ids := make(map[string]struct{})
		for _, t := range byLanguage[lang] {
			ids[t.StringID] = struct{}{}
			allIDs[t.StringID] = struct{}{}
		}
		idsByLang[lang] = ids
	}

	for _, lang := range languages {
		var missing []string
		for id := range allIDs {
			if _, ok := idsByLang[lang][id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) == 0 {
			continue
		}
		sort.Strings(missing)
		first := byLanguage[lang][0]
		findings = append(findings, model.Finding{
			Severity:  model.SeverityLow,
			CheckName: "translations",
			Title:     fmt.Sprintf("Incomplete translations for '%s'", lang),
			Description: fmt.Sprintf(
				"Language '%s' is missing %d translation(s) present in other languages (e.g. '%s').",
				lang, len(missing), missing[0]),
			File:       first.File,
			Line:       first.Line,
			Suggestion: fmt.Sprintf("Add missing 'translate %s ...:' blocks.", lang),
		})
	}

	return findings
}
