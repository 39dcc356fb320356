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
	"bytes"
	"fmt"
	"os"
	"slices"
	"text/template"

	"golang.org/x/tools/imports"
)

// minLimbs is the narrowest width the limb package supports; FromUint64
// writes two limbs unconditionally.
const minLimbs = 2

// Width describes one generated vector type.
type Width struct {
	Name  string // "U128"
	Limbs int    // 4
	Bits  int    // 128
}

// NewWidth returns the Width for a limb count.
func NewWidth(limbs int) (Width, error) {
	if limbs < minLimbs {
		return Width{}, fmt.Errorf("limb count %d below minimum %d", limbs, minLimbs)
	}
	bits := 32 * limbs
	return Width{Name: fmt.Sprintf("U%d", bits), Limbs: limbs, Bits: bits}, nil
}

// Generator renders the width types of the limb package.
type Generator struct {
	OutputFile string
	Package    string
	Limbs      []int
}

// Widths returns the sorted, de-duplicated widths to generate.
func (g *Generator) Widths() ([]Width, error) {
	limbs := slices.Clone(g.Limbs)
	slices.Sort(limbs)
	limbs = slices.Compact(limbs)

	widths := make([]Width, 0, len(limbs))
	for _, n := range limbs {
		w, err := NewWidth(n)
		if err != nil {
			return nil, err
		}
		widths = append(widths, w)
	}
	return widths, nil
}

// Render returns the formatted Go source.
func (g *Generator) Render() ([]byte, error) {
	widths, err := g.Widths()
	if err != nil {
		return nil, err
	}
	if len(widths) == 0 {
		return nil, fmt.Errorf("no widths requested")
	}

	var buf bytes.Buffer
	err = widthsTemplate.Execute(&buf, struct {
		Package string
		Widths  []Width
	}{g.Package, widths})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	src, err := imports.Process(g.OutputFile, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format output: %w", err)
	}
	return src, nil
}

// Run renders and writes OutputFile.
func (g *Generator) Run() error {
	src, err := g.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.OutputFile, src, 0644); err != nil {
		return fmt.Errorf("write %s: %w", g.OutputFile, err)
	}
	return nil
}

var widthsTemplate = template.Must(template.New("widths").Parse(`// Code generated by limbgen. DO NOT EDIT.

package {{.Package}}
{{range .Widths}}
// {{.Name}} is a {{.Bits}}-bit unsigned integer held as {{.Limbs}} uint32 limbs,
// least-significant limb first.
type {{.Name}} [{{.Limbs}}]uint32

// Compile-time check that {{.Name}} satisfies Vector.
var _ = One[{{.Name}}]

// Width returns {{.Bits}}.
func ({{.Name}}) Width() int { return {{.Bits}} }

// Limbs returns {{.Limbs}}.
func ({{.Name}}) Limbs() int { return {{.Limbs}} }

func (a {{.Name}}) Limb(i int) uint32 { return a[i] }

func (a {{.Name}}) WithLimb(i int, x uint32) {{.Name}} {
	a[i] = x
	return a
}

func (a {{.Name}}) IsZero() bool { return a == {{.Name}}{} }

func (a {{.Name}}) IsOne() bool { return IsOne(a[:]) }

func (a {{.Name}}) IsEven() bool { return a[0]&1 == 0 }

func (a {{.Name}}) Equal(b {{.Name}}) bool { return a == b }

func (a {{.Name}}) Greater(b {{.Name}}) bool { return Greater(a[:], b[:]) }

func (a {{.Name}}) Halve() {{.Name}} {
	var r {{.Name}}
	Halve(r[:], a[:])
	return r
}

func (a {{.Name}}) Add(b {{.Name}}) AddOutcome[{{.Name}}] {
	var r {{.Name}}
	overflow := Add(r[:], a[:], b[:])
	return AddOutcome[{{.Name}}]{Value: r, Overflow: overflow}
}

func (a {{.Name}}) TripleAndIncrement() AddOutcome[{{.Name}}] {
	var r {{.Name}}
	overflow := TripleAndIncrement(r[:], a[:])
	return AddOutcome[{{.Name}}]{Value: r, Overflow: overflow}
}

func (a {{.Name}}) String() string { return Format(a) }
{{end}}`))
