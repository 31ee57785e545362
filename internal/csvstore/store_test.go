package csvstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
	}, opts...)
	return New(t.TempDir(), opts...)
}

func writeTableFile(t *testing.T, s *Store, table, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), table+".csv"), []byte(content), 0o644))
}

func readLines(t *testing.T, s *Store, table string) []string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(s.Dir(), table+".csv"))
	require.NoError(t, err)
	b = bytes.TrimPrefix(b, []byte("\ufeff"))
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestLoad_MissingTable(t *testing.T) {
	s := newTestStore(t)

	tbl, err := s.Load(context.Background(), "posts")

	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"id", "title", "content", "author", "club", "created_date", "likes", "comments", "image_path", "image_data", "tags", "post_type"}, tbl.Columns)
}

func TestLoad_HeaderOnly(t *testing.T) {
	s := newTestStore(t)
	writeTableFile(t, s, "custom", "\ufeffa,b\n")

	tbl, err := s.Load(context.Background(), "custom")

	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
}

func TestLoad_InvalidTableName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "../etc/passwd")

	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestAddRecord_FirstClub(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddRecord(ctx, "clubs", Row{"name": "Coding", "icon": "💻", "max_members": 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	tbl, err := s.Load(ctx, "clubs")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]
	assert.Equal(t, int64(1), row["id"])
	assert.Equal(t, "Coding", row["name"])
	assert.Equal(t, "💻", row["icon"])
	assert.Equal(t, int64(20), row["max_members"])
	assert.Equal(t, fixedNow, row["created_date"])
}

func TestAddRecord_SequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddRecord(ctx, "posts", Row{"title": "a"})
	require.NoError(t, err)
	second, err := s.AddRecord(ctx, "posts", Row{"title": "b"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestAddRecord_IDsNotReusedAfterDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.AddRecord(ctx, "posts", Row{"title": fmt.Sprint(i)})
		require.NoError(t, err)
	}
	n, err := s.DeleteRecord(ctx, "posts", 3)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	next, err := s.GenerateID(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)

	id, err := s.AddRecord(ctx, "posts", Row{"title": "after delete"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestAddRecord_IDAboveExistingFileRows(t *testing.T) {
	s := newTestStore(t)
	writeTableFile(t, s, "posts", "id,title\n7,x\n3,y\n")

	id, err := s.AddRecord(context.Background(), "posts", Row{"title": "z"})

	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestAddRecord_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddRecord(ctx, "posts", Row{"id": 5, "title": "x"})
	require.NoError(t, err)

	_, err = s.AddRecord(ctx, "posts", Row{"id": 5, "title": "y"})

	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestAddRecord_KeepsGivenCreationTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)

	_, err := s.AddRecord(ctx, "posts", Row{"title": "x", "created_date": created})
	require.NoError(t, err)

	tbl, err := s.Load(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, created, tbl.Rows[0]["created_date"])
}

func TestAddRecord_AddsUnknownColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeTableFile(t, s, "posts", "id,title\n1,old\n")

	_, err := s.AddRecord(ctx, "posts", Row{"title": "new", "mood": "happy"})
	require.NoError(t, err)

	tbl, err := s.Load(ctx, "posts")
	require.NoError(t, err)
	assert.Contains(t, tbl.Columns, "mood")
	assert.Equal(t, "", tbl.Rows[0]["mood"])
	assert.Equal(t, "happy", tbl.Rows[1]["mood"])
}

func TestAddRecord_TableWithoutID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddRecord(ctx, "users", Row{"username": "kim", "password": "x", "role": "member"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)

	tbl, err := s.Load(ctx, "users")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.NotContains(t, tbl.Columns, "id")

	_, err = s.GenerateID(ctx, "users")
	assert.ErrorIs(t, err, ErrNoIDColumn)
}

func TestAddRecord_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	ids := make(chan int64, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.AddRecord(ctx, "chat_logs", Row{"username": fmt.Sprintf("u%d", i), "message": "hi"})
			assert.NoError(t, err)
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	tbl, err := s.Load(ctx, "chat_logs")
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, writers)
	for i := int64(1); i <= writers; i++ {
		assert.True(t, seen[i])
	}
}

func TestUpdateRecord_ChangesOnlyField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeTableFile(t, s, "posts",
		"\ufeffid,title,content,author,club,created_date,likes,comments,image_path,image_data,tags,post_type\n"+
			"1,첫 글,\"hello, world\",kim,코딩,2025-01-20 14:00:00,0,2,,,,\n"+
			"2,둘째,body,lee,댄스,01/20/2025,3,0,,,,notice\n")
	before := readLines(t, s, "posts")

	err := s.UpdateRecord(ctx, "posts", 1, Row{"likes": 5})
	require.NoError(t, err)

	after := readLines(t, s, "posts")
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, `1,첫 글,"hello, world",kim,코딩,2025-01-20 14:00:00,5,2,,,,`, after[1])

	tbl, err := s.Load(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, int64(5), tbl.Rows[0]["likes"])
	assert.Equal(t, "hello, world", tbl.Rows[0]["content"])
	assert.Equal(t, int64(2), tbl.Rows[0]["comments"])
}

func TestUpdateRecord_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddRecord(ctx, "posts", Row{"title": "x"})
	require.NoError(t, err)

	err = s.UpdateRecord(ctx, "posts", 42, Row{"likes": 1})

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateRecord_NonNumericValueKeptAsText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddRecord(ctx, "posts", Row{"title": "x"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateRecord(ctx, "posts", 1, Row{"likes": "many"}))

	tbl, err := s.Load(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, "many", tbl.Rows[0]["likes"])
}

func TestUpdateWhere_ByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddRecord(ctx, "users", Row{"username": "kim", "name": "김", "role": "member"})
	require.NoError(t, err)
	_, err = s.AddRecord(ctx, "users", Row{"username": "lee", "name": "이", "role": "member"})
	require.NoError(t, err)

	n, err := s.UpdateWhere(ctx, "users", "username", "lee", Row{"club_name": "댄스"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tbl, err := s.Load(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "", tbl.Rows[0]["club_name"])
	assert.Equal(t, "댄스", tbl.Rows[1]["club_name"])
}

func TestAddRecords_SingleBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddRecord(ctx, "notifications", Row{"username": "a"})
	require.NoError(t, err)

	ids, err := s.AddRecords(ctx, "notifications", []Row{{"username": "b"}, {"username": "c"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids)

	_, err = s.AddRecords(ctx, "notifications", []Row{{"username": "d"}, {"id": 2, "username": "dup"}})
	assert.ErrorIs(t, err, ErrDuplicateID)

	tbl, err := s.Load(ctx, "notifications")
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 3)

	id, err := s.GenerateID(ctx, "notifications")
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestUpdateFunc_ConcurrentIncrements(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id, err := s.AddRecord(ctx, "posts", Row{"title": "a", "likes": 0})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.UpdateFunc(ctx, "posts", id, func(cur Row) (Row, error) {
				return Row{"likes": cur.Int("likes") + 1}, nil
			}))
		}()
	}
	wg.Wait()

	tbl, err := s.Load(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, int64(10), tbl.Rows[0].Int("likes"))

	err = s.UpdateFunc(ctx, "posts", 42, func(Row) (Row, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteRecord_KeepsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := s.AddRecord(ctx, "posts", Row{"title": title})
		require.NoError(t, err)
	}

	n, err := s.DeleteRecord(ctx, "posts", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tbl, err := s.Load(ctx, "posts")
	require.NoError(t, err)
	var titles []string
	for _, r := range tbl.Rows {
		titles = append(titles, r.Text("title"))
	}
	assert.Equal(t, []string{"a", "c", "d"}, titles)
}

func TestDeleteRecord_RemovesAllMatches(t *testing.T) {
	s := newTestStore(t)
	writeTableFile(t, s, "posts", "id,title\n1,a\n2,b\n1,dup\n")

	n, err := s.DeleteRecord(context.Background(), "posts", 1)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"id,title,content,author,club,created_date,likes,comments,image_path,image_data,tags,post_type", "2,b,,,,,,,,,,"}, readLines(t, s, "posts"))
}

func TestDeleteRecord_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.DeleteRecord(context.Background(), "posts", 1)

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteBefore(t *testing.T) {
	s := newTestStore(t)
	writeTableFile(t, s, "chat_logs", "id,username,club,message,timestamp,deleted\n"+
		"1,a,코딩,old,2025-01-01 10:00:00,false\n"+
		"2,b,코딩,new,2025-03-13 10:00:00,false\n"+
		"3,c,코딩,odd,someday,false\n")
	ctx := context.Background()

	n, err := s.DeleteBefore(ctx, "chat_logs", "timestamp", fixedNow.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.DeleteBefore(ctx, "chat_logs", "timestamp", fixedNow.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	tbl, err := s.Load(ctx, "chat_logs")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, int64(2), tbl.Rows[0].Int("id"))
	assert.Equal(t, int64(3), tbl.Rows[1].Int("id"))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cols := []string{"id", "username", "club", "message", "timestamp", "deleted"}
	rows := []Row{
		{"id": int64(1), "username": "kim", "club": "코딩", "message": "안녕, \"친구\"", "timestamp": time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), "deleted": false},
		{"id": int64(2), "username": "lee", "club": "전체", "message": "multi\nline", "timestamp": nil, "deleted": true},
	}

	require.NoError(t, s.Save(ctx, "chat_logs", &Table{Columns: cols, Rows: rows}))
	tbl, err := s.Load(ctx, "chat_logs")

	require.NoError(t, err)
	assert.Equal(t, cols, tbl.Columns)
	assert.Equal(t, rows, tbl.Rows)
}

func TestSave_WritesBOMAndCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)

	require.NoError(t, s.Save(context.Background(), "badges", &Table{}))

	b, err := os.ReadFile(filepath.Join(dir, "badges.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\xef\xbb\xbf")))
	assert.Equal(t, "\ufeffid,username,badge_name,badge_icon,description,awarded_date,awarded_by\n", string(b))
}

func TestLoad_DateTimeFormats(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want time.Time
	}{
		{name: "canonical", cell: "2025-01-20 14:00:00", want: time.Date(2025, 1, 20, 14, 0, 0, 0, time.UTC)},
		{name: "fractional seconds", cell: "2025-01-20 14:00:00.250000", want: time.Date(2025, 1, 20, 14, 0, 0, 250000000, time.UTC)},
		{name: "date only", cell: "2025-01-20", want: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{name: "us style", cell: "01/20/2025", want: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{name: "day first", cell: "25/12/2024", want: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)},
		{name: "slashes", cell: "2025/01/20", want: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{name: "auto detected", cell: "03 February 2013", want: time.Date(2013, 2, 3, 0, 0, 0, 0, time.UTC)},
		{name: "unparsable uses fallback", cell: "someday soon", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			writeTableFile(t, s, "notifications", "id,username,created_date\n1,kim,"+tt.cell+"\n")

			tbl, err := s.Load(context.Background(), "notifications")

			require.NoError(t, err)
			require.Len(t, tbl.Rows, 1)
			got := tbl.Rows[0]["created_date"]
			if raw, ok := got.(RawTime); ok {
				assert.Equal(t, tt.cell, raw.Raw)
				got = raw.Fallback
			}
			assert.True(t, tt.want.Equal(got.(time.Time)), "got %v", tbl.Rows[0]["created_date"])
		})
	}
}

func TestLoad_DateFallbackOption(t *testing.T) {
	fallback := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestStore(t, WithDateFallback(fallback))
	writeTableFile(t, s, "votes", "id,end_date\n1,not-a-date\n2,\n")

	tbl, err := s.Load(context.Background(), "votes")

	require.NoError(t, err)
	assert.Equal(t, RawTime{Raw: "not-a-date", Fallback: fallback}, tbl.Rows[0]["end_date"])
	assert.Nil(t, tbl.Rows[1]["end_date"])

	var v struct {
		EndDate time.Time `csv:"end_date"`
	}
	require.NoError(t, Unmarshal(tbl.Rows[0], &v))
	assert.Equal(t, fallback, v.EndDate)
}

func TestSave_KeepsUnparsableDateText(t *testing.T) {
	s := newTestStore(t)
	writeTableFile(t, s, "events", "id,title,created_date\n1,회장 선거,다음 주 금요일\n2,축제,2025-05-01 18:00:00\n")
	ctx := context.Background()

	tbl, err := s.Load(ctx, "events")
	require.NoError(t, err)
	tbl.Rows[1]["title"] = "축제 일정"
	require.NoError(t, s.Save(ctx, "events", tbl))

	assert.Equal(t, []string{
		"id,title,created_date",
		"1,회장 선거,다음 주 금요일",
		"2,축제 일정,2025-05-01 18:00:00",
	}, readLines(t, s, "events"))
}

func TestLoad_TypedColumns(t *testing.T) {
	s := newTestStore(t)
	writeTableFile(t, s, "quiz_responses", "id,quiz_id,username,score,time_taken,answers\n1.0,2,kim,abc,1.5,\"[\"\"a\"\"]\"\n")

	tbl, err := s.Load(context.Background(), "quiz_responses")

	require.NoError(t, err)
	row := tbl.Rows[0]
	assert.Equal(t, int64(1), row["id"])
	assert.Equal(t, int64(2), row["quiz_id"])
	assert.Equal(t, "abc", row["score"])
	assert.Equal(t, 1.5, row["time_taken"])
	assert.Equal(t, `["a"]`, row["answers"])
}

func TestEnsureTables_CreatesAndMigrates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	writeTableFile(t, s, "clubs", "name,icon\n코딩,💻\n")

	require.NoError(t, s.EnsureTables(ctx))

	tables, err := s.Tables()
	require.NoError(t, err)
	assert.Contains(t, tables, "users")
	assert.Contains(t, tables, "quiz_responses")
	lines := readLines(t, s, "clubs")
	assert.Equal(t, "name,icon,id,description,president,max_members,created_date,meet_link", lines[0])
	assert.Equal(t, "코딩,💻,,,,,,", lines[1])
}

func TestReplaceRaw(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddRecord(ctx, "posts", Row{"title": "keep"})
	require.NoError(t, err)
	before := readLines(t, s, "posts")

	err = s.ReplaceRaw(ctx, "posts", []byte("id,title\n1,\"broken\n"))
	assert.ErrorIs(t, err, ErrInvalidCSV)
	assert.Equal(t, before, readLines(t, s, "posts"))

	require.NoError(t, s.ReplaceRaw(ctx, "posts", []byte("\ufeffid,title\n9,restored\n")))
	tbl, err := s.Load(ctx, "posts")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "restored", tbl.Rows[0]["title"])
}

func TestSink_ReceivesEventsAndNeverFailsWrites(t *testing.T) {
	var mu sync.Mutex
	var events []Event
	sink := SinkFunc(func(_ context.Context, ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
		panic("sink exploded")
	})
	s := newTestStore(t, WithSink(sink))
	ctx := WithActor(context.Background(), "teacher1")

	id, err := s.AddRecord(ctx, "posts", Row{"title": "x"})
	require.NoError(t, err)
	_, err = s.AddRecord(ctx, "logs", Row{"description": "not audited"})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, OpInsert, events[0].Operation)
	assert.Equal(t, "posts", events[0].Table)
	assert.Equal(t, id, events[0].RecordID)
	assert.Equal(t, "teacher1", events[0].Actor)
	assert.Equal(t, fixedNow, events[0].Time)
}

func TestLocalLocker_RespectsContext(t *testing.T) {
	l := NewLocalLocker()
	unlock, err := l.Lock(context.Background(), "posts")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "posts")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	again, err := l.Lock(context.Background(), "posts")
	require.NoError(t, err)
	again()
}

func TestAddUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddUnique(ctx, "users", "username", Row{"username": "kim", "name": "김"})
	require.NoError(t, err)

	_, err = s.AddUnique(ctx, "users", "username", Row{"username": "kim", "name": "다른 김"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	tbl, err := s.Load(ctx, "users")
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)
}

func TestAddUniqueBy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := []string{"vote_id", "username"}

	_, err := s.AddUniqueBy(ctx, "vote_responses", key, Row{"vote_id": 1, "username": "kim"})
	require.NoError(t, err)
	_, err = s.AddUniqueBy(ctx, "vote_responses", key, Row{"vote_id": 2, "username": "kim"})
	require.NoError(t, err)
	_, err = s.AddUniqueBy(ctx, "vote_responses", key, Row{"vote_id": 1, "username": "lee"})
	require.NoError(t, err)

	_, err = s.AddUniqueBy(ctx, "vote_responses", key, Row{"vote_id": int64(1), "username": "kim"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}
