// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package initrd inspects initrd archives before they are handed to the
// emulator, so a broken archive fails the environment check instead of
// producing a silently hanging guest.
package initrd

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cavaliergopher/cpio"
)

// ErrInvalidArchive is returned if a file is not a readable cpio archive.
var ErrInvalidArchive = errors.New("invalid initrd archive")

// Info describes the contents of an initrd archive.
type Info struct {
	// Files, Dirs and Links count the archive entries by type.
	Files int
	Dirs  int
	Links int

	// Size is the total uncompressed payload size in bytes.
	Size int64

	// HasInit reports whether the archive carries a top level init.
	HasInit bool

	// Compressed reports whether the archive was gzip compressed.
	Compressed bool
}

// Inspect reads the initrd archive at path. Plain and gzip compressed
// cpio archives are supported.
func Inspect(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open initrd: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read reads an initrd archive from r.
func Read(r io.Reader) (*Info, error) {
	buffered := bufio.NewReader(r)

	info := &Info{}

	compressed, err := isGzip(buffered)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}

	reader := io.Reader(buffered)

	if compressed {
		info.Compressed = true

		gzReader, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}
		defer gzReader.Close()

		reader = gzReader
	}

	cpioReader := cpio.NewReader(reader)

	for {
		hdr, err := cpioReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}

		mode := hdr.FileInfo().Mode()

		switch {
		case mode.IsDir():
			info.Dirs++
		case mode.Type() == os.ModeSymlink:
			info.Links++
		default:
			info.Files++
			info.Size += hdr.Size
		}

		if isInitEntry(hdr.Name) {
			info.HasInit = true
		}
	}

	return info, nil
}

// isGzip sniffs the gzip magic without consuming the reader.
func isGzip(r *bufio.Reader) (bool, error) {
	magic, err := r.Peek(2)
	if err != nil {
		return false, err
	}

	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}

// isInitEntry reports whether name is a top level init entry, tolerating
// the leading "./" or "/" some archive builders emit.
func isInitEntry(name string) bool {
	name = strings.TrimPrefix(name, ".")
	name = strings.TrimPrefix(name, "/")

	return name == "init"
}
