// Package csvstore keeps named tables as UTF-8 (BOM) CSV files in a directory.
//
// Every mutation reads the whole file, changes it in memory and replaces the
// file atomically while holding the table's lock. Ids are issued from a
// per-table high-water mark so they grow monotonically and are never reused,
// even after the row holding the largest id is deleted.
package csvstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrRecordNotFound is returned when no row matches an update or delete.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when inserting a row whose id is already taken.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrDuplicateKey is returned by AddUnique when the key value exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNoIDColumn is returned for id operations on tables keyed otherwise.
	ErrNoIDColumn = errors.New("table has no id column")
	// ErrInvalidTable is returned for table names that are not plain identifiers.
	ErrInvalidTable = errors.New("invalid table name")
	// ErrInvalidCSV is returned when restored data does not parse.
	ErrInvalidCSV = errors.New("invalid csv")
)

// Row is one record keyed by column name. Loaded rows hold int64, float64,
// bool, time.Time, string or nil depending on the column kind.
type Row map[string]any

// Int returns the column as int64, or 0.
func (r Row) Int(column string) int64 {
	switch v := r[column].(type) {
	case nil:
		return 0
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := parseInt(v)
		return n
	}
	rv := reflect.ValueOf(r[column])
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	}
	return 0
}

// Text returns the column as text.
func (r Row) Text(column string) string {
	v, ok := r[column]
	if !ok {
		return ""
	}
	s, _ := encodeCell(column, v)
	return s
}

// Table is a loaded table.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Store is the CSV record store.
type Store struct {
	dir          string
	schemas      map[string]Schema
	locker       Locker
	sink         Sink
	logger       *slog.Logger
	now          func() time.Time
	loc          *time.Location
	dateFallback time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithSchemas registers table schemas, replacing the defaults.
func WithSchemas(schemas ...Schema) Option {
	return func(s *Store) {
		s.schemas = make(map[string]Schema, len(schemas)+1)
		for _, sc := range schemas {
			s.schemas[sc.Name] = sc
		}
		if _, ok := s.schemas[sequencesTable]; !ok {
			s.schemas[sequencesTable] = Schema{Name: sequencesTable, Columns: []string{"table", "last_id"}, NoAudit: true}
		}
	}
}

// WithLocker sets the table locker. The default serializes within the process.
func WithLocker(l Locker) Option {
	return func(s *Store) { s.locker = l }
}

// WithSink sets the activity sink.
func WithSink(sink Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used for creation stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the zone naive datetime cells are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// WithDateFallback sets the value substituted for datetime cells that match
// no known layout. Load returns such cells as RawTime carrying this value;
// Unmarshal puts it into time.Time fields. The default is the zero time, so
// callers can detect it with IsZero.
func WithDateFallback(t time.Time) Option {
	return func(s *Store) { s.dateFallback = t }
}

// New creates a store rooted at dir. No files are touched until first use.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		locker: NewLocalLocker(),
		logger: slog.Default(),
		now:    time.Now,
		loc:    time.Local,
	}
	WithSchemas(DefaultSchemas...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSink replaces the activity sink. It must be called before the store is
// shared between goroutines.
func (s *Store) SetSink(sink Sink) {
	s.sink = sink
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Schema returns the declared schema for a table.
func (s *Store) Schema(table string) (Schema, bool) {
	sc, ok := s.schemas[table]
	return sc, ok
}

func (s *Store) declaredColumns(table string) []string {
	if sc, ok := s.schemas[table]; ok {
		return append([]string(nil), sc.Columns...)
	}
	return nil
}

func (s *Store) createdColumn(table string) string {
	if sc, ok := s.schemas[table]; ok {
		return sc.CreatedColumn
	}
	return "created_date"
}

func (s *Store) hasID(table string, raw *rawTable) bool {
	if sc, ok := s.schemas[table]; ok {
		return sc.HasID()
	}
	return raw.index(ColumnID) >= 0 || len(raw.header) == 0
}

func (s *Store) lock(ctx context.Context, table string) (func(), error) {
	if !validTableName(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	unlock, err := s.locker.Lock(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", table, err)
	}
	return unlock, nil
}

func (s *Store) emit(ctx context.Context, ev Event) {
	if ev.Err != nil {
		s.logger.ErrorContext(ctx, "store operation failed",
			slog.String("table", ev.Table),
			slog.String("op", string(ev.Operation)),
			slog.Any("err", ev.Err))
	}
	if s.sink == nil {
		return
	}
	if sc, ok := s.schemas[ev.Table]; ok && sc.NoAudit {
		return
	}
	ev.Time = s.now()
	ev.Actor = ActorFrom(ctx)
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "activity sink panicked", slog.Any("panic", r))
		}
	}()
	s.sink.Record(ctx, ev)
}

// EnsureTables creates missing table files with their declared headers and
// appends declared columns missing from existing files.
func (s *Store) EnsureTables(ctx context.Context) error {
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.ensureTable(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ensureTable(ctx context.Context, table string) error {
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return err
	}
	defer unlock()

	raw, err := s.readRaw(table)
	if err != nil {
		return fmt.Errorf("read %s: %w", table, err)
	}
	if raw.exists {
		onDisk, err := s.headerOnDisk(table)
		if err != nil {
			return err
		}
		if len(onDisk) == len(raw.header) {
			return nil
		}
	}
	if err := s.writeRaw(table, raw); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "table initialized", slog.String("table", table), slog.Int("columns", len(raw.header)))
	return nil
}

func (s *Store) headerOnDisk(table string) ([]string, error) {
	f, err := os.Open(s.path(table))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	header, err := newCSVReader(f).Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return header, err
}

// Tables lists the tables that exist on disk, sorted by name.
func (s *Store) Tables() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".csv")
		if validTableName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a whole table. A missing or header-only file is an empty table
// with the declared columns, not an error.
func (s *Store) Load(ctx context.Context, table string) (*Table, error) {
	if !validTableName(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	raw, err := s.readRaw(table)
	if err != nil {
		err = fmt.Errorf("load %s: %w", table, err)
		s.emit(ctx, Event{Table: table, Operation: OpLoad, Err: err})
		return nil, err
	}
	t := &Table{
		Name:    table,
		Columns: raw.header,
		Rows:    make([]Row, 0, len(raw.rows)),
	}
	for _, cells := range raw.rows {
		row := make(Row, len(raw.header))
		for i, col := range raw.header {
			row[col] = s.decodeCell(table, col, cells[i])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Save overwrites a table with t. Columns not listed in t.Columns but present
// in rows are appended in name order. RawTime values are written as their
// original text.
func (s *Store) Save(ctx context.Context, table string, t *Table) error {
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return err
	}
	defer unlock()

	raw, err := s.encodeTable(table, t)
	if err == nil {
		err = s.writeRaw(table, raw)
	}
	if err != nil {
		err = fmt.Errorf("save %s: %w", table, err)
	}
	s.emit(ctx, Event{Table: table, Operation: OpSave, Affected: t.Len(), Err: err})
	return err
}

func (s *Store) encodeTable(table string, t *Table) (*rawTable, error) {
	raw := &rawTable{}
	if t != nil && len(t.Columns) > 0 {
		raw.header = append(raw.header, t.Columns...)
	} else {
		raw.header = s.declaredColumns(table)
	}
	if t == nil {
		return raw, nil
	}
	var extra []string
	for _, row := range t.Rows {
		for col := range row {
			if raw.index(col) < 0 && !contains(extra, col) {
				extra = append(extra, col)
			}
		}
	}
	sort.Strings(extra)
	raw.header = append(raw.header, extra...)

	raw.rows = make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(raw.header))
		for i, col := range raw.header {
			cell, err := encodeCell(col, row[col])
			if err != nil {
				return nil, err
			}
			cells[i] = cell
		}
		raw.rows = append(raw.rows, cells)
	}
	return raw, nil
}

// GenerateID returns the id the next insert into table would receive.
func (s *Store) GenerateID(ctx context.Context, table string) (int64, error) {
	if sc, ok := s.schemas[table]; ok && !sc.HasID() {
		return 0, fmt.Errorf("generate id %s: %w", table, ErrNoIDColumn)
	}
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return 0, err
	}
	defer unlock()

	raw, err := s.readRaw(table)
	if err != nil {
		return 0, fmt.Errorf("generate id %s: %w", table, err)
	}
	return s.nextID(ctx, table, raw)
}

// nextID must be called with the table lock held.
func (s *Store) nextID(ctx context.Context, table string, raw *rawTable) (int64, error) {
	maxID := maxRawID(raw)
	last, err := s.lastIssued(ctx, table)
	if err != nil {
		return 0, err
	}
	if last > maxID {
		maxID = last
	}
	return maxID + 1, nil
}

func maxRawID(raw *rawTable) int64 {
	idx := raw.index(ColumnID)
	if idx < 0 {
		return 0
	}
	var maxID int64
	for _, row := range raw.rows {
		if n, ok := parseInt(row[idx]); ok && n > maxID {
			maxID = n
		}
	}
	return maxID
}

func (s *Store) lastIssued(ctx context.Context, table string) (int64, error) {
	unlock, err := s.lock(ctx, sequencesTable)
	if err != nil {
		return 0, err
	}
	defer unlock()

	seq, err := s.readRaw(sequencesTable)
	if err != nil {
		return 0, fmt.Errorf("read sequences: %w", err)
	}
	ti, li := seq.index("table"), seq.index("last_id")
	for _, row := range seq.rows {
		if row[ti] == table {
			n, _ := parseInt(row[li])
			return n, nil
		}
	}
	return 0, nil
}

func (s *Store) recordIssued(ctx context.Context, table string, id int64) error {
	unlock, err := s.lock(ctx, sequencesTable)
	if err != nil {
		return err
	}
	defer unlock()

	seq, err := s.readRaw(sequencesTable)
	if err != nil {
		return fmt.Errorf("read sequences: %w", err)
	}
	seq.ensureColumns("table", "last_id")
	ti, li := seq.index("table"), seq.index("last_id")
	for _, row := range seq.rows {
		if row[ti] == table {
			if n, _ := parseInt(row[li]); n >= id {
				return nil
			}
			row[li] = strconv.FormatInt(id, 10)
			return s.writeRaw(sequencesTable, seq)
		}
	}
	row := make([]string, len(seq.header))
	row[ti] = table
	row[li] = strconv.FormatInt(id, 10)
	seq.rows = append(seq.rows, row)
	return s.writeRaw(sequencesTable, seq)
}

// AddRecord appends row to table and returns its id (0 for tables without an
// id column). A missing id is assigned, a missing creation time is stamped and
// columns the file does not know yet are added to its header.
func (s *Store) AddRecord(ctx context.Context, table string, row Row) (int64, error) {
	return s.add(ctx, table, nil, row)
}

// AddUnique is AddRecord that first checks, under the same lock, that no row
// has the same value in keyColumn.
func (s *Store) AddUnique(ctx context.Context, table, keyColumn string, row Row) (int64, error) {
	return s.add(ctx, table, []string{keyColumn}, row)
}

// AddUniqueBy is AddUnique for a key made of several columns.
func (s *Store) AddUniqueBy(ctx context.Context, table string, keyColumns []string, row Row) (int64, error) {
	return s.add(ctx, table, keyColumns, row)
}

func (s *Store) add(ctx context.Context, table string, keyColumns []string, row Row) (int64, error) {
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return 0, err
	}
	defer unlock()

	id, err := s.addRecord(ctx, table, keyColumns, row)
	if err != nil {
		err = fmt.Errorf("add %s: %w", table, err)
	}
	s.emit(ctx, Event{Table: table, Operation: OpInsert, RecordID: id, Affected: 1, Err: err})
	return id, err
}

func (s *Store) addRecord(ctx context.Context, table string, keyColumns []string, row Row) (int64, error) {
	raw, err := s.readRaw(table)
	if err != nil {
		return 0, err
	}
	id, err := s.appendRow(ctx, table, raw, keyColumns, row)
	if err != nil {
		return 0, err
	}
	return id, s.commitAppend(ctx, table, raw, id)
}

// AddRecords appends rows with a single file write and returns their ids in
// order. When any row is rejected nothing is written.
func (s *Store) AddRecords(ctx context.Context, table string, rows []Row) ([]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ids, err := s.addRecords(ctx, table, rows)
	if err != nil {
		err = fmt.Errorf("add %s: %w", table, err)
	}
	s.emit(ctx, Event{Table: table, Operation: OpInsert, Affected: len(ids), Err: err})
	return ids, err
}

func (s *Store) addRecords(ctx context.Context, table string, rows []Row) ([]int64, error) {
	raw, err := s.readRaw(table)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	var maxID int64
	for _, row := range rows {
		id, err := s.appendRow(ctx, table, raw, nil, row)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if id > maxID {
			maxID = id
		}
	}
	if err := s.commitAppend(ctx, table, raw, maxID); err != nil {
		return nil, err
	}
	return ids, nil
}

// appendRow adds row to raw in memory and returns its id.
func (s *Store) appendRow(ctx context.Context, table string, raw *rawTable, keyColumns []string, row Row) (int64, error) {
	if err := checkUnique(raw, keyColumns, row); err != nil {
		return 0, err
	}
	rec := make(Row, len(row)+2)
	for k, v := range row {
		rec[k] = v
	}

	var (
		id  int64
		err error
	)
	withID := s.hasID(table, raw)
	if withID {
		if given, ok := rec[ColumnID]; ok && given != nil {
			id = rec.Int(ColumnID)
			if id <= 0 {
				return 0, fmt.Errorf("invalid id %v", given)
			}
			if idx := raw.index(ColumnID); idx >= 0 {
				for _, r := range raw.rows {
					if n, ok := parseInt(r[idx]); ok && n == id {
						return 0, fmt.Errorf("%w: %d", ErrDuplicateID, id)
					}
				}
			}
		} else {
			if id, err = s.nextID(ctx, table, raw); err != nil {
				return 0, err
			}
		}
		rec[ColumnID] = id
	}
	if col := s.createdColumn(table); col != "" && isBlank(rec[col]) {
		rec[col] = s.now()
	}

	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	if withID {
		raw.ensureColumns(ColumnID)
	}
	raw.ensureColumns(cols...)

	cells := make([]string, len(raw.header))
	for i, col := range raw.header {
		if cells[i], err = encodeCell(col, rec[col]); err != nil {
			return 0, err
		}
	}
	raw.rows = append(raw.rows, cells)
	return id, nil
}

// checkUnique fails with ErrDuplicateKey when a row of raw has the same
// values as row in every key column.
func checkUnique(raw *rawTable, keyColumns []string, row Row) error {
	if len(keyColumns) == 0 {
		return nil
	}
	keys := make([]string, len(keyColumns))
	idx := make([]int, len(keyColumns))
	for i, col := range keyColumns {
		key, err := encodeCell(col, row[col])
		if err != nil {
			return err
		}
		keys[i] = key
		if idx[i] = raw.index(col); idx[i] < 0 {
			return nil
		}
	}
	for _, r := range raw.rows {
		same := true
		for i := range keyColumns {
			if r[idx[i]] != keys[i] {
				same = false
				break
			}
		}
		if same {
			return fmt.Errorf("%w: %s=%q", ErrDuplicateKey, strings.Join(keyColumns, ","), strings.Join(keys, ","))
		}
	}
	return nil
}

// commitAppend writes raw and moves the table's high-water mark to id.
func (s *Store) commitAppend(ctx context.Context, table string, raw *rawTable, id int64) error {
	if err := s.writeRaw(table, raw); err != nil {
		return err
	}
	if id > 0 {
		if err := s.recordIssued(ctx, table, id); err != nil {
			return fmt.Errorf("record sequence: %w", err)
		}
	}
	return nil
}

// UpdateRecord overwrites the given fields of the row with id. Other fields
// and other rows are written back unchanged.
func (s *Store) UpdateRecord(ctx context.Context, table string, id int64, changes Row) error {
	if sc, ok := s.schemas[table]; ok && !sc.HasID() {
		return fmt.Errorf("update %s: %w", table, ErrNoIDColumn)
	}
	_, err := s.update(ctx, table, ColumnID, idMatcher(id), changes, id)
	return err
}

// UpdateWhere overwrites the given fields of every row whose column equals
// value and returns the number of rows changed.
func (s *Store) UpdateWhere(ctx context.Context, table, column, value string, changes Row) (int, error) {
	return s.update(ctx, table, column, textMatcher(value), changes, 0)
}

func (s *Store) update(ctx context.Context, table, column string, match func(string) bool, changes Row, id int64) (int, error) {
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return 0, err
	}
	defer unlock()

	n, err := s.updateLocked(table, column, match, changes)
	if err != nil {
		err = fmt.Errorf("update %s: %w", table, err)
	}
	s.emit(ctx, Event{Table: table, Operation: OpUpdate, RecordID: id, Affected: n, Err: err})
	return n, err
}

func (s *Store) updateLocked(table, column string, match func(string) bool, changes Row) (int, error) {
	raw, err := s.readRaw(table)
	if err != nil {
		return 0, err
	}
	idx := raw.index(column)
	if idx < 0 {
		return 0, ErrRecordNotFound
	}

	cols := make([]string, 0, len(changes))
	for col := range changes {
		if col != ColumnID {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	cells := make(map[string]string, len(cols))
	for _, col := range cols {
		cell, err := encodeCell(col, changes[col])
		if err != nil {
			return 0, err
		}
		cells[col] = cell
	}

	var n int
	for _, row := range raw.rows {
		if !match(row[idx]) {
			continue
		}
		n++
	}
	if n == 0 {
		return 0, ErrRecordNotFound
	}
	raw.ensureColumns(cols...)
	for _, row := range raw.rows {
		if !match(row[idx]) {
			continue
		}
		for _, col := range cols {
			row[raw.index(col)] = cells[col]
		}
	}
	return n, s.writeRaw(table, raw)
}

// UpdateFunc calls fn with the current row with id and applies the changes it
// returns, all under the table lock. Use it for counters and other updates
// that depend on the stored value.
func (s *Store) UpdateFunc(ctx context.Context, table string, id int64, fn func(current Row) (Row, error)) error {
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.updateFuncLocked(table, id, fn)
	if err != nil {
		err = fmt.Errorf("update %s: %w", table, err)
	}
	s.emit(ctx, Event{Table: table, Operation: OpUpdate, RecordID: id, Affected: 1, Err: err})
	return err
}

func (s *Store) updateFuncLocked(table string, id int64, fn func(Row) (Row, error)) error {
	raw, err := s.readRaw(table)
	if err != nil {
		return err
	}
	idx := raw.index(ColumnID)
	if idx < 0 {
		return ErrNoIDColumn
	}
	match := idMatcher(id)
	for _, cells := range raw.rows {
		if !match(cells[idx]) {
			continue
		}
		current := make(Row, len(raw.header))
		for i, col := range raw.header {
			current[col] = s.decodeCell(table, col, cells[i])
		}
		changes, err := fn(current)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		_, err = s.updateLocked(table, ColumnID, match, changes)
		return err
	}
	return ErrRecordNotFound
}

// DeleteRecord removes the rows with id and returns how many were removed.
func (s *Store) DeleteRecord(ctx context.Context, table string, id int64) (int, error) {
	if sc, ok := s.schemas[table]; ok && !sc.HasID() {
		return 0, fmt.Errorf("delete %s: %w", table, ErrNoIDColumn)
	}
	return s.delete(ctx, table, ColumnID, idMatcher(id), id)
}

// DeleteWhere removes every row whose column equals value.
func (s *Store) DeleteWhere(ctx context.Context, table, column, value string) (int, error) {
	return s.delete(ctx, table, column, textMatcher(value), 0)
}

// DeleteBefore removes rows whose datetime column is earlier than cutoff.
// Rows with an empty or unparsable cell are kept. No match is not an error.
func (s *Store) DeleteBefore(ctx context.Context, table, column string, cutoff time.Time) (int, error) {
	before := func(cell string) bool {
		t, ok := parseTime(cell, s.loc)
		return ok && t.Before(cutoff)
	}
	n, err := s.delete(ctx, table, column, before, 0)
	if errors.Is(err, ErrRecordNotFound) {
		return 0, nil
	}
	return n, err
}

func (s *Store) delete(ctx context.Context, table, column string, match func(string) bool, id int64) (int, error) {
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return 0, err
	}
	defer unlock()

	n, err := s.deleteLocked(table, column, match)
	if err != nil {
		err = fmt.Errorf("delete %s: %w", table, err)
	}
	s.emit(ctx, Event{Table: table, Operation: OpDelete, RecordID: id, Affected: n, Err: err})
	return n, err
}

func (s *Store) deleteLocked(table, column string, match func(string) bool) (int, error) {
	raw, err := s.readRaw(table)
	if err != nil {
		return 0, err
	}
	idx := raw.index(column)
	if idx < 0 {
		return 0, ErrRecordNotFound
	}
	kept := raw.rows[:0]
	for _, row := range raw.rows {
		if !match(row[idx]) {
			kept = append(kept, row)
		}
	}
	n := len(raw.rows) - len(kept)
	if n == 0 {
		return 0, ErrRecordNotFound
	}
	raw.rows = kept
	return n, s.writeRaw(table, raw)
}

// CopyTable copies the table file as stored on disk to w while holding the
// table lock. It reports false when the table has no file.
func (s *Store) CopyTable(ctx context.Context, table string, w io.Writer) (bool, error) {
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return false, err
	}
	defer unlock()

	f, err := os.Open(s.path(table))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return false, fmt.Errorf("copy %s: %w", table, err)
	}
	return true, nil
}

// ReplaceRaw overwrites a table with CSV data after checking that it parses.
// Nothing is written when validation fails.
func (s *Store) ReplaceRaw(ctx context.Context, table string, data []byte) error {
	if err := ValidateCSV(data); err != nil {
		return fmt.Errorf("restore %s: %w", table, err)
	}
	unlock, err := s.lock(ctx, table)
	if err != nil {
		return err
	}
	defer unlock()

	body := bytes.TrimPrefix(data, []byte("\ufeff"))
	err = s.writeFile(table, func(w io.Writer) error {
		_, err := w.Write(body)
		return err
	})
	if err != nil {
		err = fmt.Errorf("restore %s: %w", table, err)
	}
	s.emit(ctx, Event{Table: table, Operation: OpSave, Err: err})
	return err
}

func idMatcher(id int64) func(string) bool {
	return func(cell string) bool {
		n, ok := parseInt(cell)
		return ok && n == id
	}
}

func textMatcher(value string) func(string) bool {
	return func(cell string) bool {
		return cell == value
	}
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case time.Time:
		return val.IsZero()
	case RawTime:
		return strings.TrimSpace(val.Raw) == ""
	case *time.Time:
		return val == nil || val.IsZero()
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
