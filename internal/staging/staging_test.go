package staging

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
)

// writeTestDocument writes a minimal valid package (content types, root
// rels, one workbook part) to the given path.
func writeTestDocument(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`,
		"xl/workbook.xml": `<workbook/>`,
	}

	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

// TestStage_EmptyPath verifies the invalid-argument error.
func TestStage_EmptyPath(t *testing.T) {
	_, err := Stage("")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindInvalidArgument))
}

// TestStage_MissingFile verifies the not-found error.
func TestStage_MissingFile(t *testing.T) {
	_, err := Stage(filepath.Join(t.TempDir(), "nope.xlsm"))
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindNotFound))
}

// TestStage_InvalidContainer verifies that a file that exists but is not
// a valid package fails with a package-open error.
func TestStage_InvalidContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xlsm")
	require.NoError(t, os.WriteFile(path, []byte("not a package"), 0o600))

	_, err := Stage(path)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindPackageOpen))
}

// TestStage_CopiesAndOpens verifies the happy path: a private copy at a
// fresh path with identical bytes and an open package over it.
func TestStage_CopiesAndOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()

	assert.Equal(t, path, s.OriginalPath)
	assert.NotEqual(t, path, s.Path)
	require.NotNil(t, s.Package)
	assert.True(t, s.Package.PartExists("/xl/workbook.xml"))

	orig, err := os.ReadFile(path)
	require.NoError(t, err)
	staged, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, orig, staged)
}

// TestStage_ReadOnlySourceGetsWritableCopy verifies the staged copy is
// writable even when the source file is read-only.
func TestStage_ReadOnlySourceGetsWritableCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xlsm")
	writeTestDocument(t, path)
	require.NoError(t, os.Chmod(path, 0o444))

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()

	info, err := os.Stat(s.Path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o200, "staged copy must be writable")
}

// TestHasExternalChanges covers the three comparison outcomes: identical
// files, a length change, and an equal-length content change.
func TestHasExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()

	changed, err := s.HasExternalChanges()
	require.NoError(t, err)
	assert.False(t, changed, "fresh staging should match the original")

	// Append a byte: lengths differ, detected without content comparison.
	orig, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(orig, 0x00), 0o600))

	changed, err = s.HasExternalChanges()
	require.NoError(t, err)
	assert.True(t, changed)

	// Same length, different content: detected by the chunk comparison.
	flipped := make([]byte, len(orig))
	copy(flipped, orig)
	flipped[len(flipped)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, flipped, 0o600))

	changed, err = s.HasExternalChanges()
	require.NoError(t, err)
	assert.True(t, changed)
}

// TestCommit_OverwritesTarget verifies the staged bytes land at the target
// path.
func TestCommit_OverwritesTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.Package.Close())

	target := filepath.Join(dir, "copy.xlsm")
	require.NoError(t, s.Commit(target, true))

	staged, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	committed, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, staged, committed)
}

// TestCommit_PreservesAttributes verifies a read-only target keeps its
// mode across the overwrite when preserveAttributes is set.
func TestCommit_PreservesAttributes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()
	require.NoError(t, s.Package.Close())

	target := filepath.Join(dir, "target.xlsm")
	writeTestDocument(t, target)
	require.NoError(t, os.Chmod(target, 0o444))

	require.NoError(t, s.Commit(target, true))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
}

// TestCommit_WithoutPreserveLeavesWritable verifies the mode is not
// reapplied when preserveAttributes is false.
func TestCommit_WithoutPreserveLeavesWritable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()
	require.NoError(t, s.Package.Close())

	target := filepath.Join(dir, "target.xlsm")
	writeTestDocument(t, target)
	require.NoError(t, os.Chmod(target, 0o444))

	require.NoError(t, s.Commit(target, false))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o200, "target should stay writable without preserve")
}

// TestCommit_CopyFailureRestoresAttributes verifies a read-only target
// does not stay writable when the overwrite itself fails.
func TestCommit_CopyFailureRestoresAttributes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()
	require.NoError(t, s.Package.Close())

	target := filepath.Join(dir, "target.xlsm")
	writeTestDocument(t, target)
	require.NoError(t, os.Chmod(target, 0o444))

	// Deleting the staged file makes the copy fail after the target was
	// already made writable for the overwrite.
	require.NoError(t, os.Remove(s.Path))
	require.Error(t, s.Commit(target, true))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
}

// TestDispose_Idempotent verifies the temp file is deleted, the package
// handle is released, and repeated disposal is harmless.
func TestDispose_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	stagingPath := s.Path

	s.Dispose()
	assert.True(t, s.disposed)
	assert.Nil(t, s.Package)
	_, err = os.Stat(stagingPath)
	assert.True(t, os.IsNotExist(err), "staging file should be deleted")

	// Second disposal must be a no-op.
	s.Dispose()
}

// TestReopen verifies a fresh package handle can be opened over the staged
// file after the previous one was closed.
func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xlsm")
	writeTestDocument(t, path)

	s, err := Stage(path)
	require.NoError(t, err)
	defer s.Dispose()

	require.NoError(t, s.Package.Close())
	require.NoError(t, s.Reopen())
	assert.True(t, s.Package.PartExists("/xl/workbook.xml"))
}
