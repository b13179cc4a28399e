// Copyright 2021 Irfan Sharif.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package pbcheck

// Database is the append-only sequence of constraints a proof run accumulates,
// indexed by a monotonically assigned positive integer id. Id 0 is reserved
// and never assigned. Constraints are never deleted or mutated once stored --
// callers must treat a fetched Constraint as a read-only borrow.
type Database struct {
	constraints []*Constraint // constraints[0] is unused; id i lives at index i
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{constraints: make([]*Constraint, 1)}
}

// Add appends c to the database and returns its freshly assigned id.
func (d *Database) Add(c *Constraint) int64 {
	d.constraints = append(d.constraints, c)
	return int64(len(d.constraints) - 1)
}

// Get fetches the constraint stored under id. It returns a ReferenceError if
// id is out of range or not yet defined.
func (d *Database) Get(id int64) (*Constraint, error) {
	if id <= 0 || id >= int64(len(d.constraints)) {
		return nil, &ReferenceError{ID: id}
	}
	return d.constraints[id], nil
}

// Len returns the number of constraints stored (not counting the unused id
// 0).
func (d *Database) Len() int {
	return len(d.constraints) - 1
}
