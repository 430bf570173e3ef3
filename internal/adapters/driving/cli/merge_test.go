package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provenlabs/repotrawl/internal/core/ports/driving"
)

func TestMergeCmd_Use(t *testing.T) {
	assert.Equal(t, "merge [directory]", mergeCmd.Use)
}

func TestMergeCmd_AcceptsMaxOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"merge", "out", "extra"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestMergeCmd_ExecutesWithDirectory(t *testing.T) {
	curator := &fakeCurator{merge: &driving.MergeReport{
		Inputs:     3,
		OutputPath: "out/merged_repos_20250430_150405.csv",
		Unique:     7,
		Skipped:    2,
	}}
	cleanup := setupTestServices(nil, curator)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"merge", "out"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []string{"out"}, curator.paths)
	assert.Contains(t, buf.String(), "Merged 3 catalogs into 7 unique repositories (2 rows skipped)")
	assert.Contains(t, buf.String(), "Merged catalog: out/merged_repos_20250430_150405.csv")
}

func TestMergeCmd_DefaultsToCurrentDirectory(t *testing.T) {
	curator := &fakeCurator{merge: &driving.MergeReport{Inputs: 1, Unique: 1}}
	cleanup := setupTestServices(nil, curator)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"merge"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []string{"."}, curator.paths)
}

func TestMergeCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices(nil, &fakeCurator{err: errors.New("boom")})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"merge", "out"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "merge failed")
}
