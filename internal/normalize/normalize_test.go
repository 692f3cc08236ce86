package normalize

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestDirNormalizesTrailingNewlines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), `{"x":1}`)
	writeFile(t, filepath.Join(dir, "b.json"), "{\"y\":2}\n\n\n")
	writeFile(t, filepath.Join(dir, "c.txt"), "hello")

	res, err := Dir(dir)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if res.Count() != 2 {
		t.Fatalf("expected count 2, got %d", res.Count())
	}

	if got := readFile(t, filepath.Join(dir, "a.json")); got != "{\"x\":1}\n" {
		t.Fatalf("unexpected a.json content: %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "b.json")); got != "{\"y\":2}\n" {
		t.Fatalf("unexpected b.json content: %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "c.txt")); got != "hello" {
		t.Fatalf("non-JSON file modified: %q", got)
	}
}

func TestDirEmptyFileBecomesSingleNewline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.json"), "")

	res, err := Dir(dir)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if res.Count() != 1 {
		t.Fatalf("expected count 1, got %d", res.Count())
	}
	if got := readFile(t, filepath.Join(dir, "empty.json")); got != "\n" {
		t.Fatalf("unexpected empty file content: %q", got)
	}
}

func TestDirSkipsMatchingSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "real.json"), `{"a":1}`)

	res, err := Dir(dir)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if res.Count() != 1 {
		t.Fatalf("expected count 1, got %d", res.Count())
	}
	if res.Files[0].Path != filepath.Join(dir, "real.json") {
		t.Fatalf("unexpected file processed: %s", res.Files[0].Path)
	}
}

func TestDirMissingDirectoryIsNotAnError(t *testing.T) {
	res, err := Dir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("expected no error for missing directory, got %v", err)
	}
	if res.Count() != 0 {
		t.Fatalf("expected count 0, got %d", res.Count())
	}
}

func TestDirIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), "{\"x\":1}\n\n")

	first, err := Dir(dir)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if first.ChangedCount() != 1 {
		t.Fatalf("expected first pass to change 1 file, changed %d", first.ChangedCount())
	}
	afterFirst := readFile(t, filepath.Join(dir, "a.json"))

	second, err := Dir(dir)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second.ChangedCount() != 0 {
		t.Fatalf("expected second pass to change nothing, changed %d", second.ChangedCount())
	}
	if got := readFile(t, filepath.Join(dir, "a.json")); got != afterFirst {
		t.Fatalf("second pass altered content: %q != %q", got, afterFirst)
	}
}

func TestDirPreservesInteriorContent(t *testing.T) {
	dir := t.TempDir()
	body := "{\n  \"a\": 1,\n\n  \"b\": 2\n}"
	writeFile(t, filepath.Join(dir, "a.json"), body+"\n\n")

	if _, err := Dir(dir); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "a.json")); got != body+"\n" {
		t.Fatalf("interior content not preserved: %q", got)
	}
}

func TestContent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "\n"},
		{"\n", "\n"},
		{"\n\n\n", "\n"},
		{"x", "x\n"},
		{"x\n", "x\n"},
		{"x\n\n\n", "x\n"},
		{"x\r\n", "x\r\n"}, // only \n bytes are trimmed
	}
	for _, c := range cases {
		if got := string(Content([]byte(c.in))); got != c.want {
			t.Fatalf("Content(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDirRecordsByteSizes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), "{}\n\n\n")

	res, err := Dir(dir)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	f := res.Files[0]
	if f.BytesBefore != 5 || f.BytesAfter != 3 || !f.Changed {
		t.Fatalf("unexpected file record: %+v", f)
	}
	before, after := res.Totals()
	if before != 5 || after != 3 {
		t.Fatalf("unexpected totals: before=%d after=%d", before, after)
	}
}
