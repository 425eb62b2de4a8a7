package scanner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueman82/scanr/internal/matcher"
	"github.com/blueman82/scanr/internal/output"
)

// testDiag records diagnostic messages for assertions.
type testDiag struct {
	mu     sync.Mutex
	debugs []string
	warns  []string
}

func (d *testDiag) Debugf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.debugs = append(d.debugs, fmt.Sprintf(format, args...))
}

func (d *testDiag) Warnf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.warns = append(d.warns, fmt.Sprintf(format, args...))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mustCompile(t *testing.T, patterns []string, opts matcher.Options) *matcher.PatternSet {
	t.Helper()
	set, err := matcher.Compile(patterns, opts)
	require.NoError(t, err)
	return set
}

func TestScanCaseInsensitiveCount(t *testing.T) {
	// Pattern "ERROR" with ignore-case over a 5-line file with "error" on
	// line 2 and "ERROR" on line 4.
	path := writeFile(t, t.TempDir(), "app.log",
		"starting up\nan error occurred\nrecovered\nfatal ERROR state\nshutdown\n")

	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{ShowLineNumbers: true})
	fs := NewFileScanner(
		mustCompile(t, []string{"ERROR"}, matcher.Options{IgnoreCase: true}),
		sink, &testDiag{}, Options{})

	count, scanned := fs.Scan(path)
	assert.True(t, scanned)
	assert.Equal(t, 2, count)
	assert.Equal(t, "2:an error occurred\n4:fatal ERROR state\n", buf.String())
}

func TestScanOpenErrorRecovered(t *testing.T) {
	diag := &testDiag{}
	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{})
	fs := NewFileScanner(mustCompile(t, []string{"x"}, matcher.Options{}), sink, diag, Options{})

	count, scanned := fs.Scan(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.False(t, scanned)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
	require.Len(t, diag.warns, 1)
	assert.Contains(t, diag.warns[0], "does-not-exist.txt")
}

func TestScanCountOnlySuppressesContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.txt", "a\nmatch\nb\nmatch\nc\n")

	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{CountOnly: true})
	// Context is configured but must produce no output in count mode.
	fs := NewFileScanner(mustCompile(t, []string{"match"}, matcher.Options{}),
		sink, &testDiag{}, Options{Before: 2, After: 2, CountOnly: true})

	count, _ := fs.Scan(path)
	assert.Equal(t, 2, count)
	assert.Equal(t, "2\n", buf.String())
	assert.NotContains(t, buf.String(), "--")
}

func TestScanListFilesStopsAtFirstMatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.txt", "match\nmatch\nmatch\n")

	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{ListFiles: true})
	fs := NewFileScanner(mustCompile(t, []string{"match"}, matcher.Options{}),
		sink, &testDiag{}, Options{ListFiles: true})

	count, _ := fs.Scan(path)
	// The scanner is allowed to stop after the first match in list mode.
	assert.Equal(t, 1, count)
	assert.Equal(t, path+"\n", buf.String())
}

func TestScanListFilesNoMatchPrintsNothing(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.txt", "nothing here\n")

	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{ListFiles: true})
	fs := NewFileScanner(mustCompile(t, []string{"match"}, matcher.Options{}),
		sink, &testDiag{}, Options{ListFiles: true})

	count, scanned := fs.Scan(path)
	assert.True(t, scanned)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
}

func TestScanSkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte("match\x00match\n"), 0644))

	diag := &testDiag{}
	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{})
	fs := NewFileScanner(mustCompile(t, []string{"match"}, matcher.Options{}),
		sink, diag, Options{SkipBinary: true})

	count, scanned := fs.Scan(path)
	assert.False(t, scanned, "binary files do not count as scanned")
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
	require.Len(t, diag.debugs, 1)
	assert.Contains(t, diag.debugs[0], "binary")
}

func TestScanInvertedMatching(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.txt", "keep\ndrop\nkeep\n")

	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{})
	fs := NewFileScanner(mustCompile(t, []string{"drop"}, matcher.Options{InvertMatch: true}),
		sink, &testDiag{}, Options{})

	count, _ := fs.Scan(path)
	assert.Equal(t, 2, count)
	assert.Equal(t, "keep\nkeep\n", buf.String())
}

func TestScanOnlyMatchingEmitsOneRecordPerSpan(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.txt", "foobar baz foo\n")

	var buf bytes.Buffer
	sink := output.NewSink(&buf, output.Options{OnlyMatching: true, ShowLineNumbers: true})
	fs := NewFileScanner(
		mustCompile(t, []string{"foo", "bar"}, matcher.Options{OnlyMatching: true}),
		sink, &testDiag{}, Options{})

	count, _ := fs.Scan(path)
	assert.Equal(t, 1, count)
	assert.Equal(t, "1:foo\n1:bar\n1:foo\n", buf.String())
}
