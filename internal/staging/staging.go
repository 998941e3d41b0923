package staging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
	"github.com/clbispo/office-ribbonx-editor/internal/opc"
)

// Logf is the sink for non-fatal staging conditions (double closes,
// temp-file deletion failures). It defaults to stderr; tests and the CLI
// may replace it.
var Logf = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// compareChunkSize is the word-sized block HasExternalChanges compares
// the original and staged files in.
const compareChunkSize = 8

// Staged is the private editable copy of one document file, together with
// the open package handle over it. A Staged instance is exclusively owned
// by one document and must be released exactly once via Dispose.
type Staged struct {
	// OriginalPath is the user-facing file the copy was staged from.
	OriginalPath string

	// Path is the private temp copy. Owned by this instance: created by
	// Stage, deleted by Dispose.
	Path string

	// Package is the open container over Path. Nil only after Dispose.
	Package *opc.Package

	disposed bool
}

// Stage copies the file at originalPath byte-for-byte to a freshly
// allocated temp path, makes the copy writable regardless of the source's
// attributes, and opens it as an OPC package.
//
// Fails with an invalid-argument error for an empty path, not-found if the
// source does not exist, and package-open if the bytes are not a valid
// container. On any failure no resources are left allocated.
func Stage(originalPath string) (*Staged, error) {
	if originalPath == "" {
		return nil, model.NewError(model.KindInvalidArgument, "document path must not be empty")
	}

	if _, err := os.Stat(originalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.WrapError(model.KindNotFound, fmt.Sprintf("document %s does not exist", originalPath), err)
		}
		return nil, model.WrapError(model.KindIO, fmt.Sprintf("failed to stat %s", originalPath), err)
	}

	tmp, err := os.CreateTemp("", "ribbonx-*"+filepath.Ext(originalPath))
	if err != nil {
		return nil, model.WrapError(model.KindIO, "failed to allocate staging file", err)
	}
	stagingPath := tmp.Name()
	tmp.Close()

	if err := copyFile(originalPath, stagingPath); err != nil {
		os.Remove(stagingPath)
		return nil, err
	}

	// The source may be read-only; the staged copy must always be writable.
	if err := os.Chmod(stagingPath, 0o600); err != nil {
		os.Remove(stagingPath)
		return nil, model.WrapError(model.KindIO, "failed to make staging file writable", err)
	}

	pkg, err := opc.Open(stagingPath)
	if err != nil {
		os.Remove(stagingPath)
		return nil, err
	}

	return &Staged{
		OriginalPath: originalPath,
		Path:         stagingPath,
		Package:      pkg,
	}, nil
}

// Reopen opens a fresh package handle over the staged file. The document
// calls this after every commit (successful or not) so its in-memory state
// stays usable.
func (s *Staged) Reopen() error {
	pkg, err := opc.Open(s.Path)
	if err != nil {
		return err
	}
	s.Package = pkg
	return nil
}

// HasExternalChanges reports whether the file at OriginalPath differs from
// the staged copy. Lengths are compared first; equal-length files are then
// compared in word-sized chunks from the start, short-circuiting on the
// first mismatch.
//
// This is a best-effort heuristic only. While the staged file handle is
// held open by this process, the comparison may race the process's own
// writes and report stale results. That limitation is inherited from the
// original design and deliberately not worked around here.
func (s *Staged) HasExternalChanges() (bool, error) {
	origInfo, err := os.Stat(s.OriginalPath)
	if err != nil {
		return false, model.WrapError(model.KindIO, fmt.Sprintf("failed to stat %s", s.OriginalPath), err)
	}
	stagedInfo, err := os.Stat(s.Path)
	if err != nil {
		return false, model.WrapError(model.KindIO, fmt.Sprintf("failed to stat %s", s.Path), err)
	}
	if origInfo.Size() != stagedInfo.Size() {
		return true, nil
	}

	orig, err := os.Open(s.OriginalPath)
	if err != nil {
		return false, model.WrapError(model.KindIO, fmt.Sprintf("failed to open %s", s.OriginalPath), err)
	}
	defer orig.Close()

	staged, err := os.Open(s.Path)
	if err != nil {
		return false, model.WrapError(model.KindIO, fmt.Sprintf("failed to open %s", s.Path), err)
	}
	defer staged.Close()

	a := make([]byte, compareChunkSize)
	b := make([]byte, compareChunkSize)
	for {
		na, errA := io.ReadFull(orig, a)
		nb, errB := io.ReadFull(staged, b)
		if na != nb || !bytes.Equal(a[:na], b[:nb]) {
			return true, nil
		}
		if errA == io.EOF && errB == io.EOF {
			return false, nil
		}
		if errA != nil && !errors.Is(errA, io.ErrUnexpectedEOF) && !errors.Is(errA, io.EOF) {
			return false, model.WrapError(model.KindIO, "failed to compare files", errA)
		}
		if errB != nil && !errors.Is(errB, io.ErrUnexpectedEOF) && !errors.Is(errB, io.EOF) {
			return false, model.WrapError(model.KindIO, "failed to compare files", errB)
		}
		// A short final chunk reports ErrUnexpectedEOF on both sides;
		// the next iteration hits the EOF/EOF exit.
		if errors.Is(errA, io.ErrUnexpectedEOF) && errors.Is(errB, io.ErrUnexpectedEOF) {
			return false, nil
		}
	}
}

// Commit copies the staged file over targetPath, overwriting any existing
// file. The caller must flush and close the package first.
//
// If preserveAttributes is set and a file already existed at targetPath,
// its permission bits are snapshotted before the copy and reapplied to the
// new file afterwards.
func (s *Staged) Commit(targetPath string, preserveAttributes bool) error {
	var priorMode fs.FileMode
	hadPrior := false
	if info, err := os.Stat(targetPath); err == nil {
		priorMode = info.Mode()
		hadPrior = true
		// The target itself may be read-only; clear that before the
		// overwrite so the copy can proceed.
		if err := os.Chmod(targetPath, priorMode|0o200); err != nil {
			return model.WrapError(model.KindIO, fmt.Sprintf("failed to make %s writable", targetPath), err)
		}
	}

	if err := copyFile(s.Path, targetPath); err != nil {
		// Undo the writable chmod so a failed overwrite does not leave a
		// previously read-only target writable.
		if hadPrior {
			if chmodErr := os.Chmod(targetPath, priorMode); chmodErr != nil {
				Logf("staging: failed to restore attributes of %s: %v", targetPath, chmodErr)
			}
		}
		return err
	}

	if preserveAttributes && hadPrior {
		if err := os.Chmod(targetPath, priorMode); err != nil {
			return model.WrapError(model.KindIO, fmt.Sprintf("failed to restore attributes of %s", targetPath), err)
		}
	}
	return nil
}

// Dispose closes the package handle and deletes the staged temp file.
// Safe to call multiple times; failures on this path are logged, never
// returned, because Dispose runs on cleanup paths including after prior
// errors.
func (s *Staged) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if s.Package != nil {
		if err := s.Package.Close(); err != nil {
			Logf("staging: failed to close package for %s: %v", s.OriginalPath, err)
		}
		s.Package = nil
	}

	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		Logf("staging: failed to delete staging file %s: %v", s.Path, err)
	}
}

// copyFile copies src to dst byte-for-byte, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return model.WrapError(model.KindIO, fmt.Sprintf("failed to open %s", src), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return model.WrapError(model.KindIO, fmt.Sprintf("failed to create %s", dst), err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return model.WrapError(model.KindIO, fmt.Sprintf("failed to copy %s to %s", src, dst), err)
	}
	if err := out.Close(); err != nil {
		return model.WrapError(model.KindIO, fmt.Sprintf("failed to finalize %s", dst), err)
	}
	return nil
}
