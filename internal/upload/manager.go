// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/util"
)

// MaxFileSize is the client-side per-file limit. Oversize files are
// rejected before any network I/O.
const MaxFileSize = 25 << 20

// Notifier surfaces upload progress and results to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Confirmer asks a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// File is one pending upload. Open is called at most once, only after the
// size check passed.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FromPath builds a File backed by a file on disk.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	return File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Summary is the outcome of one upload batch.
type Summary struct {
	Succeeded  int
	Failed     int
	Terminated bool   // quota exhaustion stopped the batch early
	Quota      string // last quota string the server reported
}

// Manager handles document uploads and the files/quota surface.
type Manager struct {
	client  *api.Client
	notify  Notifier
	confirm Confirmer

	// OnProgress, when set, is called before each file is considered
	// (1-based index over the batch).
	OnProgress func(index, total int, name string)

	// OnDone, when set, is called exactly once per batch after the
	// summary notification, regardless of outcome. The UI uses it to
	// reset and close the upload surface and refresh the quota readout.
	OnDone func(Summary)
}

// NewManager wires an upload manager to its surfaces.
func NewManager(client *api.Client, notify Notifier, confirm Confirmer) *Manager {
	return &Manager{client: client, notify: notify, confirm: confirm}
}

// Upload sends the batch strictly sequentially; there is exactly one
// in-flight request at any time. Oversize files fail without touching the
// network. A 429 terminates the batch: later files are never attempted.
// Whatever happens, one consolidated summary is reported and OnDone fires.
func (m *Manager) Upload(ctx context.Context, files []File) Summary {
	var s Summary
	for i, f := range files {
		if m.OnProgress != nil {
			m.OnProgress(i+1, len(files), f.Name)
		}

		if f.Size > MaxFileSize {
			m.notify.Error(fmt.Sprintf("File %q is too large (max %s)", f.Name, util.FormatBytes(MaxFileSize)))
			s.Failed++
			continue
		}

		err := m.uploadOne(ctx, f, &s)
		if err != nil {
			m.notify.Error(fmt.Sprintf("Error uploading %q: %v", f.Name, err))
			s.Failed++
			if api.IsQuotaExceeded(err) {
				s.Terminated = true
				break
			}
		}
	}

	if s.Succeeded > 0 {
		msg := fmt.Sprintf("Successfully uploaded %d file(s)", s.Succeeded)
		if s.Failed > 0 {
			msg += fmt.Sprintf(", %d failed", s.Failed)
		}
		m.notify.Success(msg)
	}

	if m.OnDone != nil {
		m.OnDone(s)
	}
	return s
}

func (m *Manager) uploadOne(ctx context.Context, f File, s *Summary) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	result, err := m.client.UploadFile(ctx, f.Name, rc)
	if err != nil {
		return err
	}
	s.Succeeded++
	s.Quota = result.Quota
	return nil
}

// Quota returns the caller's current upload allowance.
func (m *Manager) Quota(ctx context.Context) (api.Quota, error) {
	return m.client.GetQuota(ctx)
}

// ListFiles fetches the file list and the quota concurrently, the way the
// file-management surface opens: both are needed before it can draw.
func (m *Manager) ListFiles(ctx context.Context) ([]api.FileInfo, api.Quota, error) {
	var (
		wg    sync.WaitGroup
		files []api.FileInfo
		quota api.Quota
		ferr  error
		qerr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		files, ferr = m.client.ListFiles(ctx)
	}()
	go func() {
		defer wg.Done()
		quota, qerr = m.client.GetQuota(ctx)
	}()
	wg.Wait()

	if ferr != nil {
		return nil, api.Quota{}, ferr
	}
	if qerr != nil {
		return nil, api.Quota{}, qerr
	}
	return files, quota, nil
}

// DeleteFile removes an uploaded document after confirmation and returns
// the refreshed files and quota. Declining is a no-op and returns the
// zero values with deleted=false.
func (m *Manager) DeleteFile(ctx context.Context, path, name string) (deleted bool, files []api.FileInfo, quota api.Quota, err error) {
	ok, err := m.confirm.Confirm(ctx, fmt.Sprintf("Delete file %q? This cannot be undone.", name))
	if err != nil || !ok {
		return false, nil, api.Quota{}, err
	}

	if err := m.client.DeleteFile(ctx, path); err != nil {
		m.notify.Error(fmt.Sprintf("Error deleting %q: %v", name, err))
		return false, nil, api.Quota{}, err
	}
	m.notify.Success(fmt.Sprintf("Deleted %q", name))

	files, quota, err = m.ListFiles(ctx)
	return true, files, quota, err
}
