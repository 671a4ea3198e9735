package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcncl/gamedata/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerJSON = `{
	"score": {"N": "1500"},
	"name": {"S": "hero"},
	"gold": {"N": "123456789012345678901234567890.125"},
	"stats": {"M": {"hp": {"N": "10"}, "atk": {"N": "3"}}},
	"tags": {"L": [{"S": "a"}, {"N": "2"}]},
	"gone": {"NULL": true}
}`

// writeInput stores content in a temp file and returns its path.
func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCLI runs the CLI against a file and returns what it printed.
func runCLI(t *testing.T, content string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(append([]string{"-i", writeInput(t, content)}, args...), nil, &out)
	return out.String(), err
}

func TestGet_Tagged(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"string", []string{"get", "name"}, "hero\n"},
		{"int", []string{"get", "score", "-t", "int"}, "1500\n"},
		{"double", []string{"get", "score", "-t", "double"}, "1500\n"},
		{"nested map", []string{"get", "stats", "-t", "int", "--default", "4"}, "4\n"},
		{"bignumber", []string{"get", "gold", "-t", "bignumber"}, "123456789012345678901234567890.125\n"},
		{"null uses default", []string{"get", "gone", "--default", "none"}, "none\n"},
		{"missing int", []string{"get", "nope", "-t", "int", "--default", "7"}, "7\n"},
		{"bool default", []string{"get", "nope", "-t", "bool"}, "false\n"},
		{"keys", []string{"get", "stats", "-t", "keys"}, "atk\nhp\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, playerJSON, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGet_TaggedList(t *testing.T) {
	out, err := runCLI(t, playerJSON, "get", "tags", "-t", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `["a", 2]`, out)
}

func TestGet_Flat(t *testing.T) {
	input := `{"dropRate": "45%", "count": "3", "opened": "2024-05-02T10:00:00Z", "items": ["a", "b"], "sub": {"y": 1, "x": 2}}`

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"percent", []string{"-f", "flat", "get", "dropRate", "-t", "double"}, "0.45\n"},
		{"int", []string{"-f", "flat", "get", "count", "-t", "int"}, "3\n"},
		{"time", []string{"-f", "flat", "get", "opened", "-t", "time"}, "2024-05-02T10:00:00Z\n"},
		{"keys", []string{"-f", "flat", "get", "sub", "-t", "keys"}, "x\ny\n"},
		{"bignumber", []string{"-f", "flat", "get", "count", "-t", "bignumber"}, "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, input, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGet_InvalidDefault(t *testing.T) {
	_, err := runCLI(t, playerJSON, "get", "score", "-t", "int", "--default", "abc")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.NewInputError("", nil)))
	assert.Contains(t, err.Error(), "invalid --default")
}

func TestGet_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(`{"level": {"N": "12"}}`)
	}()

	var out bytes.Buffer
	require.NoError(t, run([]string{"get", "level", "-t", "int"}, r, &out))
	assert.Equal(t, "12\n", out.String())
}

func TestFlatten(t *testing.T) {
	out, err := runCLI(t, playerJSON, "flatten")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"score": 1500,
		"name": "hero",
		"gold": 123456789012345678901234567890.125,
		"stats": {"hp": 10, "atk": 3},
		"tags": ["a", 2],
		"gone": null
	}`, out)
}

func TestFlatten_Rows(t *testing.T) {
	input := `{"rows": [{"a": {"N": "1"}}, {"a": {"S": "x"}}]}`
	out, err := runCLI(t, input, "flatten", "--rows")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"a": 1}, {"a": "x"}]`, out)

	_, err = runCLI(t, input, "--rows-path", "data", "flatten", "--rows")
	assert.True(t, stderrors.Is(err, errors.ErrPathNotArray))
}

func TestDescribe(t *testing.T) {
	out, err := runCLI(t, `{"user_name": {"S": "hero"}, "level": {"N": "3"}, "flags": {"L": [{"BOOL": true}]}}`, "describe")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"KEY", "FIELD", "TAG", "VALUE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"flags", "Flags", "L", "[true]"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"level", "Level", "N", "3"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"user_name", "UserName", "S", "hero"}, strings.Fields(lines[3]))
}

func TestRows_Notices(t *testing.T) {
	input := `{"rows": [{"title": {"S": "Hello"}, "isPublic": {"S": "y"}, "uuid": {"S": "n-1"}}]}`
	out, err := runCLI(t, input, "rows", "notices")
	require.NoError(t, err)
	assert.Contains(t, out, `"Title": "Hello"`)
	assert.Contains(t, out, `"IsPublic": true`)

	_, err = runCLI(t, input, "-f", "flat", "rows", "notices")
	assert.Error(t, err)
}

func TestRows_FlatKinds(t *testing.T) {
	rewards := `{"rows": [{"startRank": "1", "endRank": "3", "itemId": "gem", "rewardItemCount": "10"}]}`
	out, err := runCLI(t, rewards, "-f", "flat", "rows", "rewards")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"StartRank": 1, "EndRank": 3, "ItemID": "gem", "RewardItemCount": 10}]`, out)

	taggedRewards := `{"rows": [{"startRank": {"N": "4"}, "endRank": {"N": "9"}, "itemId": {"S": "gold"}, "rewardItemCount": {"N": "2"}}]}`
	out, err = runCLI(t, taggedRewards, "rows", "rewards")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"StartRank": 4, "EndRank": 9, "ItemID": "gold", "RewardItemCount": 2}]`, out)

	gacha := `{"elements": [{"probabilityName": "box_2", "selectedProbabilityFileId": "22"}]}`
	out, err = runCLI(t, gacha, "-f", "flat", "--rows-path", "elements", "rows", "gacha")
	require.NoError(t, err)
	assert.JSONEq(t, `{"box": ["", "22"]}`, out)
}

func TestRows_Posts(t *testing.T) {
	input := `{"postList": [{"title": "Gift", "items": [{"item": {"itemId": "gem"}, "itemCount": "5"}]}]}`
	out, err := runCLI(t, input, "-f", "flat", "rows", "posts", "--post-type", "Coupon")
	require.NoError(t, err)
	assert.Contains(t, out, `"Title": "Gift"`)
	assert.Contains(t, out, `"ItemID": "gem"`)

	_, err = runCLI(t, input, "-f", "flat", "rows", "posts", "--post-type", "Parcel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown post type")
}

func TestRun_Errors(t *testing.T) {
	_, err := runCLI(t, playerJSON, "-f", "xml", "get", "score")
	assert.Error(t, err, "unknown format is rejected")

	_, err = runCLI(t, `[1, 2]`, "get", "score")
	assert.True(t, stderrors.Is(err, errors.ErrNotObject))

	var out bytes.Buffer
	err = run([]string{"-i", "/non/existent/file.json", "get", "score"}, nil, &out)
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
}

func TestRun_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "gamedata.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: flat\nlogging:\n  level: error\n"), 0644))

	out, err := runCLI(t, `{"rate": "10%"}`, "-c", cfgPath, "get", "rate", "-t", "double")
	require.NoError(t, err)
	assert.Equal(t, "0.1\n", out)
}
