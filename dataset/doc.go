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


// Package dataset reads the static JSON documents the catalog is built from.
//
// Three documents are understood:
//
//   - poems_minimal.json: an array of poem records
//   - lemmas.json: word to morphological analyses (see morph.Lexicon)
//   - poems_morphology_compact.json: poem id to lines of word references
//     (see morph.Compact)
//
// Records are decoded leniently: null entries inside a lines array become
// empty lines, and numeric fields such as year or number may arrive either
// as JSON numbers or strings. A record with neither text nor lines is still
// decoded; rejecting it is left to core.ValidatePoem.
package dataset
