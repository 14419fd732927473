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


// Package filter narrows the poem catalog under a declarative set of constraints.
//
// A Spec is sparse: every zero-valued field leaves its dimension unconstrained,
// and the zero Spec is the reset state that returns the collection unchanged.
// Constraints are independent, so applying two specs in sequence gives the same
// result as applying their conjunction.
//
// Cycle membership is expressed with the PoemType variant rather than two raw
// booleans; the engine translates it into (inCycle, cycleHasTitle) constraints
// at evaluation time.
//
// Free-text form input is converted with Engine.SpecFromForm, which drops
// malformed line bounds instead of applying them.
package filter
