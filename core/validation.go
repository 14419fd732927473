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

import "fmt"

// ValidatePoem validates a Poem according to domain rules.
//
// Validation rules:
//   - Text or Lines must be present
//   - NumberInCycle must not be negative
//   - LineCount must not be negative
//
// NOT validated:
//   - CycleHasTitle without InCycle (the coupling is a filter-form rule, not a record rule)
//   - LinesMorph shape (lookups fall back leniently on mismatched lengths)
//   - ID (0 is a valid dataset identifier)
func ValidatePoem(poem *Poem) error {
	if poem == nil {
		return fmt.Errorf("%w: poem is nil", ErrInvalidPoem)
	}

	if poem.Text == "" && !poem.HasLines() {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidPoem, poem.ID, ErrMissingText)
	}

	if poem.NumberInCycle < 0 {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidPoem, poem.ID, ErrInvalidNumber)
	}

	if poem.LineCount < 0 {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidPoem, poem.ID, ErrInvalidLineCount)
	}

	return nil
}
