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


package ingestion

import "errors"

var (
	// ErrPoemRepositoryRequired is returned when a poem repository is not provided.
	ErrPoemRepositoryRequired = errors.New("poem repository required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrSourceRequired is returned when Import is called without a poems document.
	ErrSourceRequired = errors.New("poems source required")

	// ErrIncompleteMorphology is returned when only one of the lexicon and compact documents is provided.
	ErrIncompleteMorphology = errors.New("lexicon and compact morphology must be provided together")
)
