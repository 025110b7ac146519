// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets TDIFF_CFG_FILE to point to a test config file and
// resets the global Config so the next getter reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TDIFF_CFG_FILE", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

// withConfig loads testFile into the global Config before running fn.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()
	setupTestConfig(t, testFile)
	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "words", cfg.Data["granularity"])
				assert.Equal(t, "text", cfg.Data["output"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				colors, ok := cfg.Data["colors"].(map[string]interface{})
				require.True(t, ok, "colors should be a map")
				assert.Equal(t, "#2ea043", colors["added"])
				assert.Equal(t, "#f85149", colors["removed"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "tdiff", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["color"])
				assert.Equal(t, 30.5, cfg.Data["ratio"])
				tags, ok := cfg.Data["tags"].([]interface{})
				require.True(t, ok)
				assert.Len(t, tags, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TDIFF_CFG_FILE", "/nonexistent/path/tdiff.yaml")
	Config = Type{}

	_, err := Load()
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoad_ConfigFileIsDirectory(t *testing.T) {
	t.Setenv("TDIFF_CFG_FILE", t.TempDir())
	Config = Type{}

	_, err := Load()
	assert.ErrorContains(t, err, "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "top level", testFile: "simple.yaml", key: "granularity", want: "words"},
		{name: "nested", testFile: "nested.yaml", key: "colors.title", want: "#58a6ff"},
		{name: "missing with default", testFile: "nested.yaml", key: "colors.bogus", defaultValue: []string{"#ffffff"}, want: "#ffffff"},
		{name: "missing without default", testFile: "nested.yaml", key: "colors.bogus", wantErr: true},
		{name: "not a string", testFile: "mixed-types.yaml", key: "version", wantErr: true},
		{name: "map is not a string", testFile: "nested.yaml", key: "colors", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, tt.testFile, func(t *testing.T) {
				got, err := GetString(tt.key, tt.defaultValue...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int", key: "version", want: 1},
		{name: "float truncates", key: "ratio", want: 30},
		{name: "nested", key: "live.debounce", want: 250},
		{name: "missing with default", key: "nope", defaultValue: []int{7}, want: 7},
		{name: "missing", key: "nope", wantErr: true},
		{name: "not an int", key: "name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, "mixed-types.yaml", func(t *testing.T) {
				got, err := GetInt(tt.key, tt.defaultValue...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestGetBool(t *testing.T) {
	withConfig(t, "mixed-types.yaml", func(t *testing.T) {
		got, err := GetBool("color")
		require.NoError(t, err)
		assert.True(t, got)

		got, err = GetBool("missing", true)
		require.NoError(t, err)
		assert.True(t, got)

		_, err = GetBool("missing")
		assert.Error(t, err)

		_, err = GetBool("name")
		assert.ErrorContains(t, err, "not a bool")
	})
}

func TestGetDurationMillis(t *testing.T) {
	withConfig(t, "mixed-types.yaml", func(t *testing.T) {
		assert.Equal(t, 250*time.Millisecond, GetDurationMillis("live.debounce", time.Second))
		assert.Equal(t, time.Second, GetDurationMillis("missing.debounce", time.Second))
		assert.Equal(t, time.Second, GetDurationMillis("watch.debounce", time.Second), "negative values fall back")
		assert.Equal(t, time.Second, GetDurationMillis("name", time.Second))
	})
}

func TestConfig_GetWithNamespace(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		Config.Namespace = "split"

		got, err := GetString("colors.added")
		require.NoError(t, err)
		assert.Equal(t, "#00ff00", got, "namespaced key wins")

		got, err = GetString("colors.removed")
		require.NoError(t, err)
		assert.Equal(t, "#f85149", got, "falls back to the bare key")

		got, err = GetString("output")
		require.NoError(t, err)
		assert.Equal(t, "json", got)

		Config.Namespace = "unified"
		got, err = GetString("granularity")
		require.NoError(t, err)
		assert.Equal(t, "chars", got)
	})
}

func TestConfig_LazyLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")
	require.Empty(t, Config.Data)

	got, err := GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "text", got)
	assert.NotEmpty(t, Config.Source)
}

func TestGetStringSlice(t *testing.T) {
	tests := []struct {
		name         string
		namespace    string
		key          string
		defaultValue [][]string
		want         []string
		wantErr      string
	}{
		{name: "dotted", key: "split.defaults", want: []string{"--titles", "--color"}},
		{name: "namespace fallback", namespace: "split", key: "brief", want: []string{"--changed", "--output=raw"}},
		{name: "default", key: "unified.defaults", defaultValue: [][]string{{"--x"}}, want: []string{"--x"}},
		{name: "missing", key: "unified.defaults", wantErr: "no valid path"},
		{name: "non-string element", key: "mixed", wantErr: "not a string"},
		{name: "not a slice", key: "split", wantErr: "not a slice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, "sets.yaml", func(t *testing.T) {
				Config.Namespace = tt.namespace
				got, err := GetStringSlice(tt.key, tt.defaultValue...)
				if tt.wantErr != "" {
					assert.ErrorContains(t, err, tt.wantErr)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}
