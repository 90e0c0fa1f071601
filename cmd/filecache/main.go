// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

// Command filecache builds and inspects filecache archives.
//
//	filecache build -o app.fc -root DIR
//	filecache list ARCHIVE
//	filecache version ARCHIVE
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/statikbin/filecache"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "version":
		err = runVersion(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "filecache:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  filecache build -o ARCHIVE -root DIR
  filecache list ARCHIVE
  filecache version ARCHIVE`)
}

// runBuild walks root and packs every regular file into an archive.
func runBuild(args []string) error {
	flags := pflag.NewFlagSet("build", pflag.ContinueOnError)
	out := flags.StringP("out", "o", "", "output archive path")
	root := flags.String("root", "", "source directory to pack")
	verbose := flags.BoolP("verbose", "v", false, "log progress")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *out == "" || *root == "" {
		return errors.New("build requires -o and -root")
	}

	cfg := filecache.Config{SourceRoot: ensureTrailingSlash(*root)}
	if *verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	c := filecache.New(cfg)
	defer func() { _ = c.Close() }()

	err := filepath.WalkDir(*root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		name := c.RelativePath(path)
		return c.RegisterFile(name, path)
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", *root, err)
	}

	return c.Save(*out)
}

// runList loads an archive without materializing payloads and prints names.
func runList(args []string) error {
	flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("list requires exactly one archive path")
	}

	c := filecache.New(filecache.Config{})
	defer func() { _ = c.Close() }()

	if err := c.Load(flags.Arg(0), filecache.LoadOptions{DeferDecompress: true}); err != nil {
		return err
	}

	return c.Dump(os.Stdout)
}

// runVersion prints the detected archive format version.
func runVersion(args []string) error {
	flags := pflag.NewFlagSet("version", pflag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("version requires exactly one archive path")
	}

	c := filecache.New(filecache.Config{})
	defer func() { _ = c.Close() }()

	version, err := c.DetectVersion(flags.Arg(0))
	if err != nil {
		if errors.Is(err, filecache.ErrUnknownFormat) {
			fmt.Println("unknown")
			return nil
		}

		return err
	}

	fmt.Println(version)
	return nil
}

func ensureTrailingSlash(dir string) string {
	if strings.HasSuffix(dir, "/") {
		return dir
	}

	return dir + "/"
}
