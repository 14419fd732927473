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


// Package morph retrieves precomputed morphological analyses for poem tokens.
//
// Lookups never fail: when a poem has no analysis table, or the table has no
// entry at the requested coordinates, a single synthetic analysis marked
// Unavailable is returned so callers always have something to display.
//
// The package also resolves the compact morphology format, where each poem
// stores only word references and a shared Lexicon holds the analyses.
package morph
