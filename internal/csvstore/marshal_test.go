package csvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLevel string

type testQuiz struct {
	ID        int64      `csv:"id,omitempty"`
	Title     string     `csv:"title"`
	Level     testLevel  `csv:"status"`
	Questions []string   `csv:"questions"`
	TimeLimit int        `csv:"time_limit"`
	Active    bool       `csv:"allow_multiple"`
	Created   time.Time  `csv:"created_date"`
	Due       *time.Time `csv:"due_date"`
	Score     float64    `csv:"time_taken"`
	Ignored   string     `csv:"-"`
	internal  string
}

func TestMarshal(t *testing.T) {
	due := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	q := testQuiz{
		Title:     "파이썬",
		Level:     "active",
		Questions: []string{"a", "b"},
		TimeLimit: 10,
		Due:       &due,
		Ignored:   "x",
		internal:  "y",
	}

	row, err := Marshal(&q)

	require.NoError(t, err)
	assert.Equal(t, Row{
		"title":          "파이썬",
		"status":         "active",
		"questions":      `["a","b"]`,
		"time_limit":     int64(10),
		"allow_multiple": false,
		"created_date":   nil,
		"due_date":       due,
		"time_taken":     0.0,
	}, row)
}

func TestMarshal_RejectsNonStruct(t *testing.T) {
	_, err := Marshal(42)
	assert.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	created := time.Date(2025, 1, 20, 14, 0, 0, 0, time.UTC)
	row := Row{
		"id":             int64(3),
		"title":          "퀴즈",
		"status":         "closed",
		"questions":      `["x"]`,
		"time_limit":     "15",
		"allow_multiple": "True",
		"created_date":   created,
		"due_date":       nil,
		"time_taken":     int64(2),
	}

	var q testQuiz
	require.NoError(t, Unmarshal(row, &q))

	assert.Equal(t, int64(3), q.ID)
	assert.Equal(t, "퀴즈", q.Title)
	assert.Equal(t, testLevel("closed"), q.Level)
	assert.Equal(t, []string{"x"}, q.Questions)
	assert.Equal(t, 15, q.TimeLimit)
	assert.True(t, q.Active)
	assert.Equal(t, created, q.Created)
	assert.Nil(t, q.Due)
	assert.Equal(t, 2.0, q.Score)
}

func TestUnmarshal_BadJSON(t *testing.T) {
	var q testQuiz
	err := Unmarshal(Row{"questions": "[not json"}, &q)
	assert.Error(t, err)
}

func TestMarshal_ThroughStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	row, err := Marshal(testQuiz{Title: "t", Questions: []string{"q1"}, TimeLimit: 5})
	require.NoError(t, err)

	id, err := s.AddRecord(ctx, "quizzes", row)
	require.NoError(t, err)

	tbl, err := s.Load(ctx, "quizzes")
	require.NoError(t, err)
	var got testQuiz
	require.NoError(t, Unmarshal(tbl.Rows[0], &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, []string{"q1"}, got.Questions)
	assert.Equal(t, 5, got.TimeLimit)
	assert.Equal(t, fixedNow, got.Created)
}
