// Copyright (C) 2018  MediBloc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>

package testutil

import (
	"testing"

	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/medibloc/go-keyrecover/storage"
	"github.com/medibloc/go-keyrecover/walletdb"
	"github.com/stretchr/testify/require"
)

// GetStorage return storage
func GetStorage(t *testing.T) storage.Storage {
	s, err := storage.NewMemoryStorage()
	require.NoError(t, err)
	return s
}

// NewWalletStorage returns a memory storage holding holder's records.
func NewWalletStorage(t *testing.T, holder keystore.KeyHolder) storage.Storage {
	s := GetStorage(t)
	require.NoError(t, walletdb.Save(s, holder))
	return s
}

// NewWalletLevelDB writes holder's records to a new leveldb database and
// returns its directory. The database is closed so it can be reopened.
func NewWalletLevelDB(t *testing.T, holder keystore.KeyHolder) string {
	dir := t.TempDir()
	s, err := storage.NewStorage(dir)
	require.NoError(t, err)
	require.NoError(t, walletdb.Save(s, holder))
	require.NoError(t, s.Close())
	return dir
}
