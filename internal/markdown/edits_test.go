package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_SingleReplacement(t *testing.T) {
	src := []byte("See [Guide](/setup) for details.\n")
	old := []byte("/setup")
	idx := bytes.Index(src, old)
	require.NotEqual(t, -1, idx)

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len(old), Replacement: []byte("setup.md")}})
	require.NoError(t, err)
	require.Equal(t, "See [Guide](setup.md) for details.\n", string(out))
}

func TestApplyEdits_MultipleReplacementsKeepOffsets(t *testing.T) {
	src := []byte("[A](one) and [B](two)\n")
	i1 := bytes.Index(src, []byte("one"))
	i2 := bytes.Index(src, []byte("two"))

	out, err := ApplyEdits(src, []Edit{
		{Start: i1, End: i1 + 3, Replacement: []byte("one.md")},
		{Start: i2, End: i2 + 3, Replacement: []byte("two.md")},
	})
	require.NoError(t, err)
	require.Equal(t, "[A](one.md) and [B](two.md)\n", string(out))
}

func TestApplyEdits_NoEditsReturnsSource(t *testing.T) {
	src := []byte("untouched\n")
	out, err := ApplyEdits(src, nil)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestApplyEdits_RejectsOverlappingEdits(t *testing.T) {
	src := []byte("abcdef")
	_, err := ApplyEdits(src, []Edit{
		{Start: 1, End: 4, Replacement: []byte("X")},
		{Start: 3, End: 5, Replacement: []byte("Y")},
	})
	require.Error(t, err)
}

func TestApplyEdits_RejectsOutOfBounds(t *testing.T) {
	_, err := ApplyEdits([]byte("ab"), []Edit{{Start: 1, End: 5, Replacement: []byte("X")}})
	require.Error(t, err)

	_, err = ApplyEdits([]byte("ab"), []Edit{{Start: -1, End: 1, Replacement: []byte("X")}})
	require.Error(t, err)
}
