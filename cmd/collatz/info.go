// Copyright 2025 go-collatz Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-collatz/config"
	"github.com/ajroetker/go-collatz/kernel"
	"github.com/ajroetker/go-collatz/limb"
)

type hostInfo struct {
	OS        string        `yaml:"os"`
	Arch      string        `yaml:"arch"`
	CPUs      int           `yaml:"cpus"`
	Target    string        `yaml:"target"`
	LimbLanes int           `yaml:"limb_lanes"`
	Widths    []widthInfo   `yaml:"widths"`
	Config    config.Config `yaml:"config"`
}

type widthInfo struct {
	Bits       int    `yaml:"bits"`
	Limbs      int    `yaml:"limbs"`
	RecordSize int    `yaml:"record_size"`
	Max        string `yaml:"max"`
}

func describeWidth[V limb.Vector[V]]() widthInfo {
	var v V
	return widthInfo{
		Bits:       v.Width(),
		Limbs:      v.Limbs(),
		RecordSize: kernel.RecordSize[V](),
		Max:        limb.Format(limb.Max[V]()),
	}
}

func newInfoCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the host target, supported widths and effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := kernel.DetectTarget()
			info := hostInfo{
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
				CPUs:      runtime.NumCPU(),
				Target:    target.Name,
				LimbLanes: target.LimbLanes(),
				Widths: []widthInfo{
					describeWidth[limb.U64](),
					describeWidth[limb.U128](),
					describeWidth[limb.U256](),
				},
				Config: *cfg,
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(info); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
