package manager

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEpisodeList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int32
		wantErr bool
	}{
		{name: "single", input: "7", want: []int32{7}},
		{name: "list", input: "1,5,9", want: []int32{1, 5, 9}},
		{name: "range", input: "10-12", want: []int32{10, 11, 12}},
		{name: "mixed", input: "8,10-12", want: []int32{8, 10, 11, 12}},
		{name: "dedup and sort", input: "5, 3-5 ,1", want: []int32{1, 3, 4, 5}},
		{name: "one number range", input: "4-4", want: []int32{4}},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "1,two", wantErr: true},
		{name: "bad range bound", input: "3-x", wantErr: true},
		{name: "reversed range", input: "5-3", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "empty token", input: "1,,2", wantErr: true},
		{name: "huge range", input: "1-1000000", wantErr: true},
		{name: "largest number", input: "2147483647", want: []int32{math.MaxInt32}},
		{name: "range ending at largest number", input: "2147483645-2147483647", want: []int32{math.MaxInt32 - 2, math.MaxInt32 - 1, math.MaxInt32}},
		{name: "beyond largest number", input: "2147483648", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEpisodeList(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEpisodeList)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
