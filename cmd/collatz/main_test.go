// Copyright 2025 go-collatz Authors
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

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-collatz/collatz"
	"github.com/ajroetker/go-collatz/config"
	"github.com/ajroetker/go-collatz/kernel"
	"github.com/ajroetker/go-collatz/limb"
	"github.com/ajroetker/go-collatz/workerpool"
)

func testConfig() config.Config {
	return config.Config{
		StepLimit: 100000,
		GroupSize: 64,
		Width:     128,
		BatchSize: 50000,
		LogLevel:  "error",
		LogFormat: "json",
	}
}

// execute runs the command tree with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := testConfig()
	cmd := newRootCmd(&cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunText(t *testing.T) {
	out, err := execute(t, "run", "--start", "1", "--count", "6", "--batch-size", "4", "--group-size", "2")
	require.NoError(t, err)

	want := `Collatz Results:
n=1: steps=0, max=1, outcome=reached-one
n=2: steps=1, max=2, outcome=reached-one
n=3: steps=7, max=16, outcome=reached-one
n=4: steps=2, max=4, outcome=reached-one
n=5: steps=5, max=16, outcome=reached-one
n=6: steps=8, max=16, outcome=reached-one
`
	assert.Equal(t, want, out)
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "--start", "25", "--count", "5", "--batch-size", "2", "--format", "json")
	require.NoError(t, err)

	var got []record
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var r record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		got = append(got, r)
	}
	require.Len(t, got, 5)
	for i, r := range got {
		assert.Equal(t, strconv.Itoa(25+i), r.N, "records stay in input order")
	}
	assert.Equal(t, record{N: "27", Steps: 111, Max: "9232", Outcome: "reached-one"}, got[2])
}

func TestRunYAML(t *testing.T) {
	out, err := execute(t, "run", "--start", "1", "--count", "5", "--batch-size", "2", "--format", "yaml")
	require.NoError(t, err)

	var got []record
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 5)
	assert.Equal(t, record{N: "3", Steps: 7, Max: "16", Outcome: "reached-one"}, got[2])
}

func TestRunOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collatz_results.txt")
	out, err := execute(t, "run", "--count", "3", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), resultsHeader+"\n"))
	assert.Equal(t, 4, strings.Count(string(data), "\n"))
}

func TestRunBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.bin")
	out, err := execute(t, "run", "--start", "25", "--count", "5", "--batch-size", "2", "--format", "binary", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 5*kernel.RecordSize[limb.U128]())

	results, err := kernel.DecodeResults[limb.U128](data)
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, collatz.Result[limb.U128]{Steps: 111, Max: limb.U128{9232}, Outcome: collatz.ReachedOne}, results[2])
	assert.Equal(t, collatz.Result[limb.U128]{Steps: 23, Max: limb.U128{88}, Outcome: collatz.ReachedOne}, results[0])
}

func TestPackThenRunInput(t *testing.T) {
	dir := t.TempDir()
	inputs := filepath.Join(dir, "inputs.bin")
	_, err := execute(t, "pack", "--start", "25", "--count", "5", "-o", inputs)
	require.NoError(t, err)

	data, err := os.ReadFile(inputs)
	require.NoError(t, err)
	values, err := kernel.DecodeInputs[limb.U128](data)
	require.NoError(t, err)
	assert.Equal(t, []limb.U128{{25}, {26}, {27}, {28}, {29}}, values)

	out, err := execute(t, "run", "--input", inputs, "--batch-size", "3")
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(out, "\n"))
	assert.Contains(t, out, "n=27: steps=111, max=9232, outcome=reached-one")

	// Packed at 64 bits, the same file holds twice as many values.
	out, err = execute(t, "run", "--width", "64", "--input", inputs)
	require.NoError(t, err)
	assert.Equal(t, 11, strings.Count(out, "\n"))

	// Packed 128-bit values do not split into 256-bit ones.
	_, err = execute(t, "run", "--width", "256", "--input", inputs)
	assert.ErrorIs(t, err, kernel.ErrRecordSize)
}

func TestRunReportsWriteErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	_, err := execute(t, "run", "--count", "100", "-o", "/dev/full")
	assert.Error(t, err)
}

func TestFormatRecordsWithPool(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	inputs := make([]limb.U256, 1000)
	results := make([]collatz.Result[limb.U256], len(inputs))
	for i := range inputs {
		inputs[i] = limb.FromUint64[limb.U256](uint64(i) << 40)
		results[i] = collatz.Result[limb.U256]{Steps: uint32(i), Max: inputs[i], Outcome: collatz.ReachedOne}
	}
	want := formatRecords(nil, inputs, results)
	assert.Equal(t, want, formatRecords(pool, inputs, results))
	assert.Equal(t, "n=1099511627776: steps=1, max=1099511627776, outcome=reached-one", want[1].String())
}

func TestRunWidths(t *testing.T) {
	// 2^100 does not fit 64 bits.
	_, err := execute(t, "run", "--width", "64", "--start", "0x10000000000000000000000000", "--count", "1")
	assert.ErrorIs(t, err, limb.ErrRange)

	out, err := execute(t, "run", "--width", "256", "--start", "0x10000000000000000000000000", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "n=1267650600228229401496703205376: steps=100, max=1267650600228229401496703205376, outcome=reached-one")
}

func TestRunRangeCrossesWidth(t *testing.T) {
	_, err := execute(t, "run", "--width", "64", "--start", "0xFFFFFFFFFFFFFFFF", "--count", "2")
	assert.ErrorIs(t, err, ErrRangeWidth)

	// The last value itself fits, and overflows on its first step.
	out, err := execute(t, "run", "--width", "64", "--start", "0xFFFFFFFFFFFFFFFF", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "n=18446744073709551615: steps=0, max=18446744073709551615, outcome=overflowed")
}

func TestRunInvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"run", "--format", "csv"}},
		{"count", []string{"run", "--count", "0"}},
		{"start", []string{"run", "--start", "twelve"}},
		{"negative start", []string{"run", "--start", "-5"}},
		{"positional", []string{"run", "7"}},
		{"binary to stdout", []string{"run", "--format", "binary"}},
		{"input with start", []string{"run", "--input", "in.bin", "--start", "5"}},
		{"missing input", []string{"run", "--input", "does-not-exist.bin"}},
		{"pack to stdout", []string{"pack", "--count", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestInvalidConfigFlag(t *testing.T) {
	_, err := execute(t, "--group-size", "0", "check", "1")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "--width", "96", "check", "1")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunMetrics(t *testing.T) {
	out, err := execute(t, "run", "--count", "10", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Equal(t, 11, strings.Count(out, "\n"))
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "27", "97", "871")
	require.NoError(t, err)
	assert.Equal(t, `n=27: steps=111, max=9232, outcome=reached-one
n=97: steps=118, max=9232, outcome=reached-one
n=871: steps=178, max=190996, outcome=reached-one
`, out)

	out, err = execute(t, "check", "--step-limit", "50", "27")
	require.NoError(t, err)
	assert.Equal(t, "n=27: steps=50, max=1780, outcome=step-limit-exceeded\n", out)

	out, err = execute(t, "check", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "outcome=cycle-detected")

	_, err = execute(t, "check")
	assert.Error(t, err)
	_, err = execute(t, "check", "0x")
	assert.ErrorIs(t, err, limb.ErrSyntax)
}

func TestCheckTrace(t *testing.T) {
	out, err := execute(t, "check", "--trace", "6")
	require.NoError(t, err)
	assert.Equal(t, `  0: 6
  1: 3
  2: 10
  3: 5
  4: 16
  5: 8
  6: 4
  7: 2
  8: 1
n=6: steps=8, max=16, outcome=reached-one
`, out)
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", "--width", "256")
	require.NoError(t, err)

	var info hostInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.Target)
	assert.Equal(t, 256, info.Config.Width)
	require.Len(t, info.Widths, 3)
	assert.Equal(t, widthInfo{Bits: 64, Limbs: 2, RecordSize: 16, Max: "18446744073709551615"}, info.Widths[0])
	assert.Equal(t, 32, info.Widths[1].RecordSize)
	assert.Equal(t, 8, info.Widths[2].Limbs)
}

func TestNewLogger(t *testing.T) {
	cfg := testConfig()
	l, err := newLogger(cfg, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel), "debug disabled at error level")

	l, err = newLogger(cfg, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel), "--verbose enables debug")

	cfg.LogFormat = "console"
	_, err = newLogger(cfg, false)
	require.NoError(t, err)

	cfg.LogLevel = "chatty"
	_, err = newLogger(cfg, false)
	assert.Error(t, err)
}
