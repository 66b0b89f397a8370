package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxContainsTitleAndLines(t *testing.T) {
	tests := []struct {
		kind   Kind
		prefix string
	}{
		{Info, "ℹ"},
		{Success, "✓"},
		{Failure, "✗"},
	}

	for _, tt := range tests {
		out := Box(tt.kind, "Dependent steps complete", "result-1: Result 1", "result-2: Result 2")
		assert.Contains(t, out, tt.prefix)
		assert.Contains(t, out, "Dependent steps complete")
		assert.Contains(t, out, "result-1: Result 1")
		assert.Contains(t, out, "result-2: Result 2")
		assert.True(t, strings.HasPrefix(out, "╭"), out)
	}
}

func TestBoxWrapsLongLines(t *testing.T) {
	long := strings.Repeat("word ", 60)
	out := Box(Info, "title", long)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), defaultWidth)
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"#", "Task"}, [][]string{
		{"1", "fetch-result-1"},
		{"2"},
		{"3", "fetch-result-2", "ignored"},
	})

	assert.Contains(t, out, "Task")
	assert.Contains(t, out, "fetch-result-1")
	assert.Contains(t, out, "fetch-result-2")
	assert.NotContains(t, out, "ignored")
	assert.Less(t, strings.Index(out, "fetch-result-1"), strings.Index(out, "fetch-result-2"))
}
