/*
 * Copyright 2025 Ironleaf Labs
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package entity

import (
	"strings"
	"unicode"
)

// confusionPairs holds letter pairs that operators routinely swap when typing
// model names. Each pair generates both substitution directions.
var confusionPairs = [][2]string{
	{"z", "s"},
}

// ExpandVariants turns a single token into the spelling variants used for
// fuzzy matching. The token itself (lowercased) always comes first. Expansion
// is idempotent on its own output: expanding any returned variant yields no
// form outside the original set's closure.
func ExpandVariants(token string) []string {
	base := strings.ToLower(strings.TrimSpace(token))
	if base == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	add(base)

	stripped := stripSeparators(base)
	add(stripped)
	add(insertBeforeFirstDigit(stripped, ' '))
	add(insertBeforeFirstDigit(stripped, '-'))

	if strings.Contains(base, "+") {
		add(strings.ReplaceAll(base, "+", ""))
		add(strings.ReplaceAll(base, "+", "plus"))
	}

	for _, v := range append([]string(nil), out...) {
		for _, pair := range confusionPairs {
			if strings.Contains(v, pair[0]) {
				add(strings.ReplaceAll(v, pair[0], pair[1]))
			}
			if strings.Contains(v, pair[1]) {
				add(strings.ReplaceAll(v, pair[1], pair[0]))
			}
		}
	}

	return out
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}

// insertBeforeFirstDigit places sep at the first letter-to-digit boundary,
// turning "ws600" into "ws 600". Returns "" when no boundary exists.
func insertBeforeFirstDigit(s string, sep rune) string {
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if unicode.IsLetter(runes[i-1]) && unicode.IsDigit(runes[i]) {
			return string(runes[:i]) + string(sep) + string(runes[i:])
		}
	}
	return ""
}
