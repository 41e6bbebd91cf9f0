package receipts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writePDF writes a minimal well-formed PDF with the given number of blank
// pages.
func writePDF(t *testing.T, path string, pages int) string {
	t.Helper()

	kids := ""
	for i := 0; i < pages; i++ {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", kids, pages),
	}
	for i := 0; i < pages; i++ {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /Resources << >> >>")
	}

	var b []byte
	b = append(b, "%PDF-1.4\n"...)
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = len(b)
		b = append(b, fmt.Sprintf("%d 0 obj\n%s\nendobj\n", i+1, obj)...)
	}
	xref := len(b)
	b = append(b, fmt.Sprintf("xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)...)
	for _, off := range offsets {
		b = append(b, fmt.Sprintf("%010d 00000 n \n", off)...)
	}
	b = append(b, fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)...)

	return writeFile(t, path, string(b))
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		path    string
		want    bool
	}{
		{name: "include match", include: []string{"*.png"}, path: "taxi.png", want: true},
		{name: "include miss", include: []string{"*.png"}, path: "taxi.jpg", want: false},
		{name: "star stays in directory", include: []string{"*.png"}, path: "march/taxi.png", want: false},
		{name: "double star crosses directories", include: []string{"**.png"}, path: "march/taxi.png", want: true},
		{name: "exclude wins", include: []string{"*.png"}, exclude: []string{"draft-*"}, path: "draft-taxi.png", want: false},
		{name: "no include accepts all", exclude: []string{"*.tmp"}, path: "hotel.jpg", want: true},
		{name: "no include still excludes", exclude: []string{"*.tmp"}, path: "hotel.tmp", want: false},
		{name: "alternatives", include: []string{"*.{png,jpg}"}, path: "hotel.jpg", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestMatcherInvalidPattern(t *testing.T) {
	_, err := NewMatcher([]string{"[a-"}, nil)
	assert.Error(t, err)
}

func TestCollectSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b-hotel.png"), "png")
	writeFile(t, filepath.Join(dir, "a-taxi.png"), "png")
	writeFile(t, filepath.Join(dir, "notes.txt"), "text")
	writeFile(t, filepath.Join(dir, "old", "c-meal.png"), "png")

	got, err := Collect(dir, []string{"**.png"}, []string{"old/**"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a-taxi.png"),
		filepath.Join(dir, "b-hotel.png"),
	}, got)
}

func TestCollectDefaultsToPDF(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "taxi.png"), "png")

	got, err := Collect(dir, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectMissingDirectory(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "missing"), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidReceipt))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	image := writeFile(t, filepath.Join(dir, "taxi.png"), "png")
	empty := writeFile(t, filepath.Join(dir, "empty.png"), "")
	broken := writeFile(t, filepath.Join(dir, "broken.pdf"), "this is not a pdf")

	tests := []struct {
		name   string
		path   string
		reason string
	}{
		{name: "missing", path: filepath.Join(dir, "missing.png"), reason: "cannot read file"},
		{name: "directory", path: dir, reason: "not a regular file"},
		{name: "empty", path: empty, reason: "file is empty"},
		{name: "malformed pdf", path: broken, reason: "malformed PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]string{image, tt.path})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReceipt))

			var re *Error
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.path, re.Path)
			assert.Equal(t, tt.reason, re.Reason)
		})
	}

	assert.NoError(t, Validate([]string{image}))
	assert.NoError(t, Validate(nil))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scans", "2-hotel.png"), "png")
	writeFile(t, filepath.Join(dir, "scans", "1-taxi.png"), "png")
	writeFile(t, filepath.Join(dir, "itinerary.png"), "png")

	got, err := Resolve(Source{
		Paths:   []string{"itinerary.png", "scans/2-hotel.png"},
		Dir:     "scans",
		Include: []string{"*.png"},
	}, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "itinerary.png"),
		filepath.Join(dir, "scans", "2-hotel.png"),
		filepath.Join(dir, "scans", "1-taxi.png"),
	}, got)
}

func TestResolveRejectsMissingExplicitPath(t *testing.T) {
	_, err := Resolve(Source{Paths: []string{"missing.pdf"}}, t.TempDir())
	assert.True(t, errors.Is(err, ErrInvalidReceipt))
}

func TestSourceIsEmpty(t *testing.T) {
	assert.True(t, Source{}.IsEmpty())
	assert.True(t, Source{Include: []string{"*.pdf"}}.IsEmpty())
	assert.False(t, Source{Dir: "."}.IsEmpty())
	assert.False(t, Source{Paths: []string{"a.pdf"}}.IsEmpty())
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("a.pdf"))
	assert.True(t, IsPDF("A.PDF"))
	assert.False(t, IsPDF("a.png"))

	_, err := PageCount("a.png")
	assert.True(t, errors.Is(err, ErrInvalidReceipt))
}

func TestPageCount(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, filepath.Join(dir, "hotel.pdf"), 2)

	require.NoError(t, Validate([]string{path}))
	n, err := PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	broken := writeFile(t, filepath.Join(dir, "broken.pdf"), "not a pdf")
	_, err = PageCount(broken)
	assert.True(t, errors.Is(err, ErrInvalidReceipt))
}
