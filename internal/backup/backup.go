// Package backup archives the data directory as a zip of table files and
// restores tables from such archives.
package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
)

// MetadataFile is the archive entry describing a backup.
const MetadataFile = "backup_metadata.json"

const (
	formatVersion  = "1.0"
	sequencesTable = "sequences"
	maxEntrySize   = 64 << 20
)

// Kind selects which tables a backup contains.
type Kind string

const (
	KindFull        Kind = "full"
	KindUsers       Kind = "users"
	KindBoard       Kind = "board"
	KindAssignments Kind = "assignments"
)

var kindTables = map[Kind][]string{
	KindUsers:       {"users", "clubs", "badges"},
	KindBoard:       {"posts", "comments"},
	KindAssignments: {"assignments", "submissions", "quizzes", "quiz_responses"},
}

// ParseKind accepts an English kind or the Korean menu label.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", string(KindFull), "전체 백업":
		return KindFull, true
	case string(KindUsers), "사용자 데이터만":
		return KindUsers, true
	case string(KindBoard), "게시판 데이터만":
		return KindBoard, true
	case string(KindAssignments), "과제 데이터만":
		return KindAssignments, true
	}
	return "", false
}

// Metadata is stored in every archive as MetadataFile.
type Metadata struct {
	BackupType    Kind      `json:"backup_type"`
	CreatedAt     time.Time `json:"created_at"`
	Description   string    `json:"description"`
	IncludeImages bool      `json:"include_images"`
	Version       string    `json:"version"`
	Tables        []string  `json:"tables"`
}

// Info describes an archive in the backup directory.
type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	RemoteURL string    `json:"remote_url,omitempty"`
}

// Uploader copies archives off-site. storage.B2Storage implements it.
type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader) (string, error)
}

// Manager creates and restores backups of a store.
type Manager struct {
	store    *csvstore.Store
	dir      string
	uploader Uploader
	now      func() time.Time
}

// NewManager writes archives to dir. uploader may be nil.
func NewManager(store *csvstore.Store, dir string, uploader Uploader) *Manager {
	return &Manager{store: store, dir: dir, uploader: uploader, now: time.Now}
}

var (
	namePattern  = regexp.MustCompile(`^backup_[a-z]+_\d{8}_\d{6}_[0-9a-f]{8}\.zip$`)
	tablePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*\.csv$`)
)

// Create writes a new archive of the tables selected by kind.
func (m *Manager) Create(ctx context.Context, kind Kind, description string) (*Info, error) {
	tables, err := m.tablesFor(kind)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	now := m.now()
	name := fmt.Sprintf("backup_%s_%s_%s.zip", kind, now.Format("20060102_150405"), uuid.NewString()[:8])

	tmp, err := os.CreateTemp(m.dir, ".backup-*")
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	defer os.Remove(tmp.Name())

	meta := Metadata{BackupType: kind, CreatedAt: now, Description: description, Version: formatVersion}
	meta.Tables, err = m.write(ctx, tmp, tables, meta)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	path := filepath.Join(m.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}

	info, err := m.stat(name)
	if err != nil {
		return nil, err
	}
	if m.uploader != nil {
		if url, err := m.upload(ctx, path, name); err != nil {
			slog.WarnContext(ctx, "upload backup", slog.String("name", name), slog.Any("err", err))
		} else {
			info.RemoteURL = url
		}
	}
	return info, nil
}

func (m *Manager) tablesFor(kind Kind) ([]string, error) {
	if kind == KindFull {
		return m.store.Tables()
	}
	tables, ok := kindTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown backup type %q", errors.ErrInvalidInput, kind)
	}
	return tables, nil
}

// write fills the archive and returns the tables that had a file.
func (m *Manager) write(ctx context.Context, w io.Writer, tables []string, meta Metadata) ([]string, error) {
	zw := zip.NewWriter(w)
	var written []string
	for _, table := range tables {
		var buf bytes.Buffer
		ok, err := m.store.CopyTable(ctx, table, &buf)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: table + ".csv", Method: zip.Deflate, Modified: meta.CreatedAt})
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(buf.Bytes()); err != nil {
			return nil, err
		}
		written = append(written, table)
	}
	meta.Tables = written
	fw, err := zw.Create(MetadataFile)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(fw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return nil, err
	}
	return written, zw.Close()
}

func (m *Manager) upload(ctx context.Context, path, name string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return m.uploader.Upload(ctx, "backups/"+name, f)
}

func (m *Manager) stat(name string) (*Info, error) {
	fi, err := os.Stat(filepath.Join(m.dir, name))
	if err != nil {
		return nil, err
	}
	return &Info{Name: name, Size: fi.Size(), CreatedAt: fi.ModTime()}, nil
}

// List returns the archives in the backup directory, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []Info
	for _, e := range entries {
		if e.IsDir() || !namePattern.MatchString(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{Name: e.Name(), Size: fi.Size(), CreatedAt: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// Path returns the file path of a listed archive.
func (m *Manager) Path(name string) (string, error) {
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("%w: bad backup name %q", errors.ErrInvalidInput, name)
	}
	path := filepath.Join(m.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.ErrNotFound
		}
		return "", err
	}
	return path, nil
}

// Restore overwrites tables from the archive in r. An empty only restores
// every table the archive holds. Every selected table is validated before
// any is written. The ID sequence table is never restored so ids are not
// reissued.
func (m *Manager) Restore(ctx context.Context, r io.ReaderAt, size int64, only []string) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidBackup, err)
	}
	wanted := make(map[string]bool, len(only))
	for _, t := range only {
		wanted[t] = true
	}

	data := make(map[string][]byte)
	for _, f := range zr.File {
		if !tablePattern.MatchString(f.Name) {
			continue
		}
		table := strings.TrimSuffix(f.Name, ".csv")
		if table == sequencesTable || (len(wanted) > 0 && !wanted[table]) {
			continue
		}
		body, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errors.ErrInvalidBackup, f.Name, err)
		}
		if err := csvstore.ValidateCSV(body); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errors.ErrInvalidBackup, f.Name, err)
		}
		data[table] = body
	}
	for t := range wanted {
		if _, ok := data[t]; !ok {
			return nil, fmt.Errorf("%w: archive has no table %q", errors.ErrInvalidBackup, t)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no tables", errors.ErrInvalidBackup)
	}

	restored := make([]string, 0, len(data))
	for t := range data {
		restored = append(restored, t)
	}
	sort.Strings(restored)
	for i, t := range restored {
		if err := m.store.ReplaceRaw(ctx, t, data[t]); err != nil {
			return restored[:i], err
		}
	}
	return restored, nil
}

// ReadMetadata returns the metadata of an archive, if it has one.
func ReadMetadata(r io.ReaderAt, size int64) (*Metadata, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidBackup, err)
	}
	for _, f := range zr.File {
		if f.Name != MetadataFile {
			continue
		}
		body, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		var meta Metadata
		if err := json.Unmarshal(body, &meta); err != nil {
			return nil, fmt.Errorf("%w: metadata: %v", errors.ErrInvalidBackup, err)
		}
		return &meta, nil
	}
	return nil, errors.ErrNotFound
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	body, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxEntrySize {
		return nil, fmt.Errorf("entry larger than %d bytes", maxEntrySize)
	}
	return body, nil
}
