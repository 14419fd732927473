// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package text turns poem records into renderable word tokens.
//
// Tokenize splits each line on single spaces and keeps the raw word for display
// while stripping a fixed punctuation set to produce the lookup form. Word
// positions are counted over every raw word, so they line up with the
// per-line morphology tables built from the same split.
//
// DisplayTitle derives the list title of a poem, falling back to its first
// non-blank line when the poem has no usable title.
package text
