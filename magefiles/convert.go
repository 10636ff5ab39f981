//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds refstrip and converts input/ into output/.
func Convert() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName))
}

// Ledger converts input/ while recording every outcome in output/refstrip.db.
func Ledger() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "--ledger", filepath.Join("output", "refstrip.db"))
}
