package catalogue

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

func TestExportImportXLSX(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.ImportJSON(ctx, []byte(`[
		{"word":"cat","definition":"feline","score":12.5,"streak":2,"totalAttempts":4,"correctFirstTryCount":3,"mistakes":{"kat":2}},
		{"word":"dog"}
	]`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, env.svc.ExportXLSX(ctx, &buf))

	other := newTestEnv(t)
	res, err := other.svc.ImportXLSX(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	cat, err := other.svc.ListWords(ctx)
	require.NoError(t, err)
	require.Len(t, cat, 2)

	got := cat[0]
	assert.Equal(t, "cat", got.Word)
	assert.Equal(t, "feline", got.Definition)
	assert.Equal(t, 12.5, got.Score)
	assert.Equal(t, 2, got.Streak)
	assert.Equal(t, 4, got.TotalAttempts)
	assert.Equal(t, 3, got.CorrectFirstTryCount)
	assert.Equal(t, map[string]int{"kat": 2}, got.Mistakes)
	assert.Equal(t, testNow, got.DateAdded)
}

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportXLSX_MinimalColumns(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	wb := workbook(t,
		[]any{"Definition", "Word"},
		[]any{"a bird", "owl"},
		[]any{"", ""},
		[]any{"", "bat"},
	)
	res, err := env.svc.ImportXLSX(ctx, wb)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	cat, err := env.svc.ListWords(ctx)
	require.NoError(t, err)
	require.Len(t, cat, 2)
	assert.Equal(t, "bat", cat[0].Word)
	assert.Equal(t, "a bird", cat[1].Definition)
	assert.Zero(t, cat[1].Score)
}

func TestImportXLSX_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		wb   func(t *testing.T) *bytes.Buffer
	}{
		{"not a workbook", func(*testing.T) *bytes.Buffer { return bytes.NewBufferString("plain text") }},
		{"no word column", func(t *testing.T) *bytes.Buffer {
			return workbook(t, []any{"term"}, []any{"owl"})
		}},
		{"row without word", func(t *testing.T) *bytes.Buffer {
			return workbook(t, []any{"word", "definition"}, []any{"owl", ""}, []any{"", "orphan definition"})
		}},
		{"duplicate", func(t *testing.T) *bytes.Buffer {
			return workbook(t, []any{"word"}, []any{"owl"}, []any{"OWL"})
		}},
		{"bad mistakes", func(t *testing.T) *bytes.Buffer {
			return workbook(t, []any{"word", "mistakes"}, []any{"owl", "kat"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			env.seed(t, "cat")
			ctx := context.Background()

			before, err := env.svc.ExportJSON(ctx)
			require.NoError(t, err)

			_, err = env.svc.ImportXLSX(ctx, tt.wb(t))
			assert.ErrorIs(t, err, domain.ErrValidation)

			after, err := env.svc.ExportJSON(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}
