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


// Package server delivers the stored catalog to browser front ends.
//
// Endpoints:
//
//	GET /poems_minimal.json   every poem, in dataset order
//	GET /api/poems/{id}       a single poem
//	GET /api/sections         distinct section names
//
// Filtering, pagination and morphological lookup run in the client against
// the delivered catalog; the server answers no search queries. Responses are
// wrapped in a CORS handler so front ends served from another origin can
// fetch them.
package server
