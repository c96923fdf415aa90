package trip

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDue(t *testing.T) {
	want := time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     string
		layout string
		want   *time.Time
		err    bool
	}{
		{name: "empty", in: "  ", layout: ISODate},
		{name: "iso", in: "2026-11-03", layout: "02/01/2006", want: &want},
		{name: "configured layout", in: "03/11/2026", layout: "02/01/2006", want: &want},
		{name: "garbage", in: "next week", layout: ISODate, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDue(tt.in, tt.layout)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDue_ErrorNamesLayout(t *testing.T) {
	_, err := ParseDue("next week", "02/01/2006")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "DD/MM/YYYY or YYYY-MM-DD")

	_, err = ParseDue("next week", ISODate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must look like YYYY-MM-DD")
}

func TestDueHint(t *testing.T) {
	tests := []struct {
		layout string
		want   string
	}{
		{layout: "", want: "YYYY-MM-DD"},
		{layout: ISODate, want: "YYYY-MM-DD"},
		{layout: "02/01/2006", want: "DD/MM/YYYY or YYYY-MM-DD"},
		{layout: "02 Jan 2006", want: "DD Mon YYYY or YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			assert.Equal(t, tt.want, DueHint(tt.layout))
		})
	}
}

func TestRemainingLabel(t *testing.T) {
	assert.Equal(t, "0 items remaining", RemainingLabel(0))
	assert.Equal(t, "1 item remaining", RemainingLabel(1))
	assert.Equal(t, "4 items remaining", RemainingLabel(4))
}
