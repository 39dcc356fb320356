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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-collatz/collatz"
	"github.com/ajroetker/go-collatz/kernel"
	"github.com/ajroetker/go-collatz/limb"
	"github.com/ajroetker/go-collatz/workerpool"
)

const resultsHeader = "Collatz Results:"

// Output formats accepted by --format. binary writes packed result records
// (see kernel.EncodeResults) and needs --output.
var formats = []string{"text", "json", "yaml", "binary"}

// record is one printed result.
type record struct {
	N       string `json:"n" yaml:"n"`
	Steps   uint32 `json:"steps" yaml:"steps"`
	Max     string `json:"max" yaml:"max"`
	Outcome string `json:"outcome" yaml:"outcome"`
}

func newRecord[V limb.Vector[V]](start V, r collatz.Result[V]) record {
	return record{
		N:       limb.Format(start),
		Steps:   r.Steps,
		Max:     limb.Format(r.Max),
		Outcome: r.Outcome.String(),
	}
}

func (r record) String() string {
	return fmt.Sprintf("n=%s: steps=%d, max=%s, outcome=%s", r.N, r.Steps, r.Max, r.Outcome)
}

// formatRecords converts a batch to records. Decimal formatting of wide
// values is not free, so chunks are spread over pool when one is given.
func formatRecords[V limb.Vector[V]](pool *workerpool.Pool, inputs []V, results []collatz.Result[V]) []record {
	records := make([]record, len(results))
	fill := func(start, end int) {
		for i := start; i < end; i++ {
			records[i] = newRecord(inputs[i], results[i])
		}
	}
	if pool == nil {
		fill(0, len(results))
	} else {
		pool.Range(len(results), fill)
	}
	return records
}

// resultWriter streams batches in input order.
type resultWriter[V limb.Vector[V]] interface {
	Write(inputs []V, results []collatz.Result[V]) error
	Flush() error
}

func newResultWriter[V limb.Vector[V]](format string, w io.Writer, pool *workerpool.Pool) (resultWriter[V], error) {
	bw := bufio.NewWriter(w)
	var enc recordEncoder
	switch format {
	case "binary":
		return &binaryWriter[V]{w: bw}, nil
	case "text":
		enc = &textEncoder{w: bw}
	case "json":
		enc = &jsonEncoder{w: bw, enc: json.NewEncoder(bw)}
	case "yaml":
		enc = &yamlEncoder{w: bw}
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %v)", format, formats)
	}
	return &recordWriter[V]{enc: enc, pool: pool}, nil
}

// withOutput calls fn with the file at path, or with the command's output
// when path is empty. Errors closing the file are reported.
func withOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return fn(f)
}

// binaryWriter writes one fixed-size record per result.
type binaryWriter[V limb.Vector[V]] struct {
	w   *bufio.Writer
	buf []byte
}

func (b *binaryWriter[V]) Write(_ []V, results []collatz.Result[V]) error {
	b.buf = kernel.EncodeResults(b.buf[:0], results)
	_, err := b.w.Write(b.buf)
	return err
}

func (b *binaryWriter[V]) Flush() error { return b.w.Flush() }

// recordWriter formats batches as records for a textual encoder.
type recordWriter[V limb.Vector[V]] struct {
	enc  recordEncoder
	pool *workerpool.Pool
}

func (r *recordWriter[V]) Write(inputs []V, results []collatz.Result[V]) error {
	return r.enc.encode(formatRecords(r.pool, inputs, results))
}

func (r *recordWriter[V]) Flush() error { return r.enc.flush() }

type recordEncoder interface {
	encode(records []record) error
	flush() error
}

// textEncoder prints a header followed by one line per record.
type textEncoder struct {
	w      *bufio.Writer
	header bool
}

func (t *textEncoder) writeHeader() error {
	if t.header {
		return nil
	}
	t.header = true
	_, err := fmt.Fprintln(t.w, resultsHeader)
	return err
}

func (t *textEncoder) encode(records []record) error {
	if err := t.writeHeader(); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(t.w, r); err != nil {
			return err
		}
	}
	return nil
}

func (t *textEncoder) flush() error {
	if err := t.writeHeader(); err != nil {
		return err
	}
	return t.w.Flush()
}

// jsonEncoder prints one JSON object per line.
type jsonEncoder struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func (j *jsonEncoder) encode(records []record) error {
	for _, r := range records {
		if err := j.enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func (j *jsonEncoder) flush() error { return j.w.Flush() }

// yamlEncoder prints a single YAML sequence. Each batch appends its items.
type yamlEncoder struct {
	w     *bufio.Writer
	wrote bool
}

func (y *yamlEncoder) encode(records []record) error {
	if len(records) == 0 {
		return nil
	}
	out, err := yaml.Marshal(records)
	if err != nil {
		return err
	}
	y.wrote = true
	_, err = y.w.Write(out)
	return err
}

func (y *yamlEncoder) flush() error {
	if !y.wrote {
		if _, err := y.w.WriteString("[]\n"); err != nil {
			return err
		}
	}
	return y.w.Flush()
}
