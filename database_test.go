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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabaseAddAndGet(t *testing.T) {
	db := NewDatabase()
	require.Equal(t, 0, db.Len())

	c := unit(1, 1, 0)
	id := db.Add(c)
	require.Equal(t, int64(1), id)
	require.Equal(t, 1, db.Len())

	got, err := db.Get(id)
	require.NoError(t, err)
	require.Same(t, c, got)
}

func TestDatabaseGetOutOfRange(t *testing.T) {
	db := NewDatabase()
	db.Add(unit(1, 1, 0))

	_, err := db.Get(0)
	require.Error(t, err)
	require.True(t, IsInvalidProof(err))

	_, err = db.Get(2)
	require.Error(t, err)
	require.True(t, IsInvalidProof(err))
}
