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


package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/poetica/core"
)

// Key namespaces. Every poem key lives under poemNamespace so a catalog
// replacement can drop records and index in one pass.
const (
	poemNamespace    = "poem:"
	poemRecordPrefix = poemNamespace + "rec:"
	poemIDPrefix     = poemNamespace + "idx:"
	checkpointPrefix = "chkpt:"
)

// makePoemRecordKey generates the key of the poem at a dataset position.
// Format: prefix:ordinal
func makePoemRecordKey(ordinal int) []byte {
	buf := make([]byte, len(poemRecordPrefix)+8)
	offset := copy(buf, poemRecordPrefix)
	// Write in BigEndian order so iteration follows dataset order
	binary.BigEndian.PutUint64(buf[offset:], uint64(ordinal))
	return buf
}

// makePoemIDKey generates the index key mapping a poem ID to its record key.
// Format: prefix:id
func makePoemIDKey(id core.PoemID) []byte {
	buf := make([]byte, len(poemIDPrefix)+8)
	offset := copy(buf, poemIDPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(int64(id)))
	return buf
}

// makeCheckpointKey generates a key for import checkpoints.
func makeCheckpointKey(name string) []byte {
	return []byte(fmt.Sprintf("%s%s", checkpointPrefix, name))
}
