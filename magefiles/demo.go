//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const demoManifest = `items:
  - {id: 1, name: flour, quantity: 4, quality: normal}
  - {id: 2, name: eggs, quantity: 12, quality: fragile, expires: 01-02-2027, max_row: 3}
  - {id: 3, name: planks, quantity: 1, quality: oversized, span: 3}
  - {id: 4, name: girder, quantity: 1, quality: oversized, span: 5}
  - {id: 5, name: salt, quantity: 2, quality: normal}
remove: [1]
`

const demoScript = "layout\nexpired 02-02-1999\nstats\nquit\n"

// Demo groups targets that run the built binary against sample stock.
type Demo mg.Namespace

// Plan builds stockroom and places a sample manifest with an isolated
// config and data dir. The girder is rejected by the default max-span
// filter.
func (Demo) Plan() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "stockroom-demo-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	manifest := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(manifest, []byte(demoManifest), 0o644); err != nil {
		return err
	}
	return sh.RunWithV(demoEnv(dir), demoBinary(), "plan", "--journal", manifest)
}

// Shell builds stockroom and feeds a short script to shell --demo.
func (Demo) Shell() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "stockroom-demo-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	cmd := exec.Command(demoBinary(), "shell", "--demo")
	cmd.Stdin = strings.NewReader(demoScript)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	for k, v := range demoEnv(dir) {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("stockroom shell --demo: %w", err)
	}
	return nil
}

func demoBinary() string {
	return filepath.Join(binaryDir, binaryName)
}

func demoEnv(dir string) map[string]string {
	return map[string]string{
		"STOCKROOM_CONFIG_DIR": filepath.Join(dir, "config"),
		"STOCKROOM_DATA_DIR":   filepath.Join(dir, "data"),
	}
}
