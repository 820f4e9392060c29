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

package recovery

import (
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update .golden files")

func TestConfigNotExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, pathExist(path))

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfig(t *testing.T) {
	path := filepath.Join("testdata", strings.ToLower(t.Name())+".golden")
	if *update {
		require.NoError(t, ioutil.WriteFile(path, []byte(defaultConfigString()), 0644))
	}

	golden, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(golden), defaultConfigString())
}

func TestConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "network: testnet\nworkers: 4\nthorough: true\nlog:\n  level: debug\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Thorough)
	assert.True(t, cfg.AcceptNoKeys)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint32(0), cfg.Log.Age)
}

func TestConfigRejectEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("accept_no_keys: false\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.AcceptNoKeys)
}

func TestConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"network", "network: dogecoin\n"},
		{"workers", "workers: -1\n"},
		{"level", "log:\n  level: loud\n"},
		{"unknown field", "masterkey: 00\n"},
		{"syntax", "network: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, ioutil.WriteFile(path, []byte(tt.content), 0600))
			_, err := LoadConfig(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigUnreadable(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(dir)
	assert.Error(t, err)
	_, err = os.Stat(dir)
	require.NoError(t, err)
}
