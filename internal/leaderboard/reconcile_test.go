package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header() []string { return []string{"Name", "Score", "Timestamp"} }

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReconcileKeepsMostRecentRowPerName(t *testing.T) {
	older := []string{"Ana", "2", "2024-05-01 10:00:00"}
	newer := []string{"Ana", "5", "2024-05-02 10:00:00"}

	for _, rows := range [][][]string{
		{header(), older, newer},
		{header(), newer, older},
	} {
		entries, err := Reconcile(rows)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Ana", entries[0].Name)
		assert.Equal(t, 5.0, entries[0].Score)
	}
}

func TestReconcileRanksByScore(t *testing.T) {
	entries, err := Reconcile([][]string{
		header(),
		{"A", "3", "2024-05-01 10:00:00"},
		{"B", "5", "2024-05-01 11:00:00"},
		{"C", "1", "2024-05-01 12:00:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A", "C"}, names(entries))
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		assert.True(t, e.Top)
	}
	assert.Equal(t, 5.0, entries[0].Score)
}

func TestReconcileDropsMalformedRows(t *testing.T) {
	entries, err := Reconcile([][]string{
		header(),
		{"Ana", "two", "2024-05-01 10:00:00"},
		{"Ben", "3", "yesterday"},
		{"Cy", "", "2024-05-01 10:00:00"},
		{"Dee"},
		{"Eve", "4", "2024-05-01 10:00:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Eve"}, names(entries))
}

func TestReconcileMalformedNewerRowDoesNotShadowOlder(t *testing.T) {
	entries, err := Reconcile([][]string{
		header(),
		{"Ana", "2", "2024-05-01 10:00:00"},
		{"Ana", "NaN", "2024-05-03 10:00:00"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2.0, entries[0].Score)
}

func TestReconcileIsIdempotent(t *testing.T) {
	rows := [][]string{
		header(),
		{"ana", "2", "2024-05-01 10:00:00"},
		{"Ben", "3", "5/2/2024 09:00:00"},
		{"Cy", "3", "2024-05-02T08:00:00Z"},
		{"Ana", "4", "2024-05-03 10:00:00"},
		{"Dee", "3", "2024-05-02 09:00:00"},
	}
	first, err := Reconcile(rows)
	require.NoError(t, err)

	second, err := Reconcile(Rows(first))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReconcileIsIdempotentAcrossOffsets(t *testing.T) {
	first, err := Reconcile([][]string{
		header(),
		{"Cy", "3", "2024-05-02T08:00:00+05:00"},
		{"Dee", "3", "2024-05-02 05:00:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dee", "Cy"}, names(first))
	assert.Equal(t, time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC), first[1].Timestamp)

	second, err := Reconcile(Rows(first))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReconcileTieBreaksByRecencyThenName(t *testing.T) {
	entries, err := Reconcile([][]string{
		header(),
		{"Old", "3", "2024-05-01 10:00:00"},
		{"Zed", "3", "2024-05-02 10:00:00"},
		{"Amy", "3", "2024-05-02 10:00:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Amy", "Zed", "Old"}, names(entries))
}

func TestReconcileNormalizesNamesBeforeDedup(t *testing.T) {
	entries, err := Reconcile([][]string{
		header(),
		{"  ana maria ", "1", "2024-05-01 10:00:00"},
		{"ANA MARIA", "2", "2024-05-02 10:00:00"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ana Maria", entries[0].Name)
	assert.Equal(t, 2.0, entries[0].Score)
}

func TestReconcileHighlightsTopTen(t *testing.T) {
	rows := [][]string{header()}
	for i := 0; i < 12; i++ {
		rows = append(rows, []string{string(rune('A' + i)), FormatScore(float64(20 - i)), "2024-05-01 10:00:00"})
	}
	entries, err := Reconcile(rows)
	require.NoError(t, err)
	require.Len(t, entries, 12)
	assert.True(t, entries[9].Top)
	assert.False(t, entries[10].Top)
}

func TestReconcileTableErrors(t *testing.T) {
	_, err := Reconcile(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Reconcile([][]string{header()})
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Reconcile([][]string{{"Name", "Points", "Timestamp"}, {"Ana", "1", "2024-05-01"}})
	assert.ErrorIs(t, err, ErrMissingColumn)

	entries, err := Reconcile([][]string{{" Name ", "Score ", " Timestamp"}, {"Ana", "1", "2024-05-01"}})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  ana ":        "Ana",
		"JOHN o'neil":   "John O'Neil",
		"mary-jane":     "Mary-Jane",
		"r2d2":          "R2D2",
		"élodie durand": "Élodie Durand",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}
