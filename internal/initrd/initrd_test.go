// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initrd_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospect/guestprobe/internal/initrd"
)

type archiveEntry struct {
	name string
	mode cpio.FileMode
	body string
}

func buildArchive(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer

	writer := cpio.NewWriter(&buf)

	for _, entry := range entries {
		hdr := &cpio.Header{
			Name: entry.name,
			Mode: entry.mode,
			Size: int64(len(entry.body)),
		}

		require.NoError(t, writer.WriteHeader(hdr))

		if entry.body != "" {
			_, err := writer.Write([]byte(entry.body))
			require.NoError(t, err)
		}
	}

	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func testEntries() []archiveEntry {
	return []archiveEntry{
		{name: "init", mode: cpio.TypeReg | 0o755, body: "#!/bin/sh"},
		{name: "bin", mode: cpio.TypeDir | 0o755},
		{name: "bin/sh", mode: cpio.TypeReg | 0o755, body: "binary"},
		{name: "linkrc", mode: cpio.TypeSymlink | 0o777, body: "bin/sh"},
	}
}

func TestRead(t *testing.T) {
	archive := buildArchive(t, testEntries())

	info, err := initrd.Read(bytes.NewReader(archive))
	require.NoError(t, err)

	assert.Equal(t, 2, info.Files)
	assert.Equal(t, 1, info.Dirs)
	assert.Equal(t, 1, info.Links)
	assert.Equal(t, int64(len("#!/bin/sh")+len("binary")), info.Size)
	assert.True(t, info.HasInit)
	assert.False(t, info.Compressed)
}

func TestReadGzip(t *testing.T) {
	archive := buildArchive(t, testEntries())

	var buf bytes.Buffer

	gzWriter := gzip.NewWriter(&buf)
	_, err := gzWriter.Write(archive)
	require.NoError(t, err)
	require.NoError(t, gzWriter.Close())

	info, err := initrd.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, info.Files)
	assert.True(t, info.HasInit)
	assert.True(t, info.Compressed)
}

func TestReadNoInit(t *testing.T) {
	archive := buildArchive(t, []archiveEntry{
		{name: "kernel.bin", mode: cpio.TypeReg | 0o644, body: "kernel"},
	})

	info, err := initrd.Read(bytes.NewReader(archive))
	require.NoError(t, err)

	assert.False(t, info.HasInit)
	assert.Equal(t, 1, info.Files)
}

func TestReadLeadingDotSlashInit(t *testing.T) {
	archive := buildArchive(t, []archiveEntry{
		{name: "./init", mode: cpio.TypeReg | 0o755, body: "#!/bin/sh"},
	})

	info, err := initrd.Read(bytes.NewReader(archive))
	require.NoError(t, err)

	assert.True(t, info.HasInit)
}

func TestReadInvalid(t *testing.T) {
	_, err := initrd.Read(bytes.NewReader([]byte("certainly not cpio data")))
	require.ErrorIs(t, err, initrd.ErrInvalidArchive)
}

func TestReadEmpty(t *testing.T) {
	_, err := initrd.Read(bytes.NewReader(nil))
	require.ErrorIs(t, err, initrd.ErrInvalidArchive)
	require.ErrorIs(t, err, io.EOF)
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "initrd.img")

	require.NoError(t, os.WriteFile(path, buildArchive(t, testEntries()), 0o644))

	info, err := initrd.Inspect(path)
	require.NoError(t, err)
	assert.True(t, info.HasInit)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := initrd.Inspect(filepath.Join(t.TempDir(), "missing.img"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
