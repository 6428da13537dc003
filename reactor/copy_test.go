package reactor_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coredrift/taskrt/reactor"
)

func TestCopy_Exactly(t *testing.T) {
	src := bytes.NewReader([]byte("hello world"))
	var dst bytes.Buffer
	n, err := reactor.Copy(&dst, src, make([]byte, 3), reactor.NewExactly(5))
	require.NoError(t, err)
	require.EqualValues(t, 5, n)
	require.Equal(t, "hello", dst.String())
}

// shortReadsReader hands back len(chunks[i]) bytes per call, never
// reporting io.EOF until the chunks are exhausted, the way a
// non-blocking or streaming source can legitimately return partial
// reads without the stream having ended.
type shortReadsReader struct {
	chunks [][]byte
	i      int
}

func (r *shortReadsReader) Read(p []byte) (int, error) {
	if r.i >= len(r.chunks) {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[r.i])
	r.i++
	return n, nil
}

func TestCopy_AtMostContinuesPastShortReads(t *testing.T) {
	src := &shortReadsReader{chunks: [][]byte{[]byte("ab"), []byte("cd"), []byte("ef")}}
	var dst bytes.Buffer
	n, err := reactor.Copy(&dst, src, make([]byte, 16), reactor.NewAtMost(100))
	require.NoError(t, err)
	require.EqualValues(t, 6, n)
	require.Equal(t, "abcdef", dst.String())
}

func TestCopy_AtMostStopsOnRealEOF(t *testing.T) {
	src := bytes.NewReader([]byte("ab"))
	var dst bytes.Buffer
	n, err := reactor.Copy(&dst, src, make([]byte, 16), reactor.NewAtMost(100))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	require.Equal(t, "ab", dst.String())
}

func TestCopy_AtMostStopsAtNWithoutWaitingForEOF(t *testing.T) {
	src := &shortReadsReader{chunks: [][]byte{[]byte("ab"), []byte("cd"), []byte("ef")}}
	var dst bytes.Buffer
	n, err := reactor.Copy(&dst, src, make([]byte, 16), reactor.NewAtMost(4))
	require.NoError(t, err)
	require.EqualValues(t, 4, n)
	require.Equal(t, "abcd", dst.String())
}

func TestCopy_UntilMatchesPattern(t *testing.T) {
	src := bytes.NewReader([]byte("abcSTOPdef"))
	var dst bytes.Buffer
	n, err := reactor.Copy(&dst, src, make([]byte, 1), reactor.NewUntil([]byte("STOP")))
	require.NoError(t, err)
	require.EqualValues(t, 7, n)
	require.Equal(t, "abcSTOP", dst.String())
}

func TestCopy_OneOfCompletesOnFirstPolicy(t *testing.T) {
	src := bytes.NewReader([]byte("abcdefgh"))
	var dst bytes.Buffer
	policy := reactor.NewOneOf(reactor.NewExactly(3), reactor.NewUntil([]byte("zzzz")))
	n, err := reactor.Copy(&dst, src, make([]byte, 1), policy)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}
