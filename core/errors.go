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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPoem indicates a Poem failed validation.
	ErrInvalidPoem = errors.New("invalid poem")

	// ErrMissingText indicates a poem has neither text nor lines.
	ErrMissingText = errors.New("poem must have text or lines")

	// ErrInvalidNumber indicates a negative number-in-cycle.
	ErrInvalidNumber = errors.New("number in cycle cannot be negative")

	// ErrInvalidLineCount indicates a negative derived line count.
	ErrInvalidLineCount = errors.New("line count cannot be negative")
)
