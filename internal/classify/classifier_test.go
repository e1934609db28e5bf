package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromColumnName(t *testing.T) {
	cases := []struct {
		name string
		want Classification
	}{
		{"Done", Done},
		{"Completed Tasks", Done},
		{"closed-issues", Done},
		{"Done & Archived", Done},
		{"Finished ✅", Done},
		{"In Progress", InProgress},
		{"in-progress", InProgress},
		{"wip", InProgress},
		{"WIP", InProgress},
		{"Active Sprint", InProgress},
		{"Doing", InProgress},
		{"To Do", Todo},
		{"TODO", Todo},
		{"Backlog", Todo},
		{"Queue", Todo},
		{"Planned work", Todo},
		{"Blocked", Unknown},
		{"Review", Unknown},
		{"", Unknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FromColumnName(tc.name), "column %q", tc.name)
	}
}

func TestClassificationStatus(t *testing.T) {
	_, ok := Unknown.Status()
	require.False(t, ok)

	st, ok := Done.Status()
	require.True(t, ok)
	require.Equal(t, "DONE", string(st))
}
