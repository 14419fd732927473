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


// Package paginate splits an ordered sequence into fixed-size pages.
//
// Slice is the pure form. Paginator keeps the page index alongside the items
// and resets it to the first page whenever the caller reports a new filter
// generation or changes the page size, so a stale index is never applied to a
// different sequence.
package paginate
