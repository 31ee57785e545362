package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/csvstore"
	"clubportal/internal/errors"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeUploader struct {
	keys []string
	body []byte
}

func (f *fakeUploader) Upload(_ context.Context, key string, r io.Reader) (string, error) {
	f.keys = append(f.keys, key)
	b, err := io.ReadAll(r)
	f.body = b
	return "https://b2.example/file/bucket/" + key, err
}

func newManager(t *testing.T, up Uploader) (*Manager, *csvstore.Store) {
	t.Helper()
	store := csvstore.New(t.TempDir(),
		csvstore.WithClock(func() time.Time { return fixedNow }),
		csvstore.WithLocation(time.UTC))
	ctx := context.Background()
	_, err := store.AddRecord(ctx, "clubs", csvstore.Row{"name": "코딩", "icon": "💻", "max_members": 20})
	require.NoError(t, err)
	_, err = store.AddRecord(ctx, "posts", csvstore.Row{"title": "안녕", "content": "첫 글", "author": "kim", "club": "코딩"})
	require.NoError(t, err)
	m := NewManager(store, t.TempDir(), up)
	m.now = func() time.Time { return fixedNow }
	return m, store
}

func tableBytes(t *testing.T, store *csvstore.Store, table string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(store.Dir(), table+".csv"))
	require.NoError(t, err)
	return b
}

func openArchive(t *testing.T, path string) (*os.File, int64) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	fi, err := f.Stat()
	require.NoError(t, err)
	return f, fi.Size()
}

func TestCreate_WritesTablesAndMetadata(t *testing.T) {
	up := &fakeUploader{}
	m, _ := newManager(t, up)

	info, err := m.Create(context.Background(), KindFull, "주간 백업")

	require.NoError(t, err)
	assert.Regexp(t, `^backup_full_20250314_093000_[0-9a-f]{8}\.zip$`, info.Name)
	assert.Equal(t, "https://b2.example/file/bucket/backups/"+info.Name, info.RemoteURL)
	assert.Equal(t, []string{"backups/" + info.Name}, up.keys)

	path, err := m.Path(info.Name)
	require.NoError(t, err)
	f, size := openArchive(t, path)
	meta, err := ReadMetadata(f, size)
	require.NoError(t, err)
	assert.Equal(t, KindFull, meta.BackupType)
	assert.Equal(t, "1.0", meta.Version)
	assert.Equal(t, "주간 백업", meta.Description)
	assert.False(t, meta.IncludeImages)
	assert.Contains(t, meta.Tables, "clubs")
	assert.Contains(t, meta.Tables, "posts")

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, info.Name, list[0].Name)
}

func TestCreate_KindSelectsTables(t *testing.T) {
	m, _ := newManager(t, nil)

	info, err := m.Create(context.Background(), KindBoard, "")
	require.NoError(t, err)

	path, err := m.Path(info.Name)
	require.NoError(t, err)
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"posts.csv", MetadataFile}, names)
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t, nil)
	before := tableBytes(t, store, "clubs")

	info, err := m.Create(ctx, KindFull, "")
	require.NoError(t, err)

	_, err = store.AddRecord(ctx, "clubs", csvstore.Row{"name": "댄스", "icon": "💃", "max_members": 15})
	require.NoError(t, err)
	require.NotEqual(t, before, tableBytes(t, store, "clubs"))

	path, err := m.Path(info.Name)
	require.NoError(t, err)
	f, size := openArchive(t, path)
	restored, err := m.Restore(ctx, f, size, []string{"clubs"})

	require.NoError(t, err)
	assert.Equal(t, []string{"clubs"}, restored)
	assert.Equal(t, bytes.TrimPrefix(before, []byte("\ufeff")), bytes.TrimPrefix(tableBytes(t, store, "clubs"), []byte("\ufeff")))
}

func TestRestore_MalformedTableWritesNothing(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t, nil)
	clubs := tableBytes(t, store, "clubs")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("clubs.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("id,name\n1,ok\n"))
	require.NoError(t, err)
	w, err = zw.Create("posts.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("id,title\n1,\"unterminated\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = m.Restore(ctx, bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil)

	assert.ErrorIs(t, err, errors.ErrInvalidBackup)
	assert.Equal(t, clubs, tableBytes(t, store, "clubs"))
}

func TestRestore_MissingSelectedTable(t *testing.T) {
	m, _ := newManager(t, nil)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("clubs.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("id,name\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = m.Restore(context.Background(), bytes.NewReader(buf.Bytes()), int64(buf.Len()), []string{"votes"})

	assert.ErrorIs(t, err, errors.ErrInvalidBackup)
}

func TestPath_RejectsTraversal(t *testing.T) {
	m, _ := newManager(t, nil)

	_, err := m.Path("../users.csv")

	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{in: "", want: KindFull, ok: true},
		{in: "게시판 데이터만", want: KindBoard, ok: true},
		{in: "users", want: KindUsers, ok: true},
		{in: "photos", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
