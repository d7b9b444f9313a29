package files

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestReadPages(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.txt", "page one\x0cpage two")

	s := New()
	if err := s.OpenInput(path); err != nil {
		t.Fatalf("OpenInput failed: %v", err)
	}
	if !s.InputOpen() {
		t.Error("InputOpen should report true")
	}

	text, ff, eof, err := s.ReadPage()
	if err != nil {
		t.Fatalf("ReadPage failed: %v", err)
	}
	if string(text) != "page one" || !ff || eof {
		t.Errorf("first page = %q ff=%v eof=%v, want \"page one\" true false", text, ff, eof)
	}

	text, ff, eof, err = s.ReadPage()
	if err != nil {
		t.Fatalf("ReadPage failed: %v", err)
	}
	if string(text) != "page two" || ff || !eof {
		t.Errorf("second page = %q ff=%v eof=%v, want \"page two\" false true", text, ff, eof)
	}

	if !s.AtEOF() {
		t.Error("AtEOF should report true after last page")
	}
}

func TestWriteAndClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	s := New()
	if err := s.OpenOutput(path, false); err != nil {
		t.Fatalf("OpenOutput failed: %v", err)
	}
	if err := s.WritePage([]byte("hello"), true); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}
	if err := s.CloseOutput(); err != nil {
		t.Fatalf("CloseOutput failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello\x0c" {
		t.Errorf("output = %q, want %q", data, "hello\x0c")
	}
}

func TestBackupKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "f.txt", "old contents")

	s := New()
	if err := s.OpenOutput(path, true); err != nil {
		t.Fatalf("OpenOutput failed: %v", err)
	}
	if err := s.WritePage([]byte("new contents"), false); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}
	if err := s.CloseOutput(); err != nil {
		t.Fatalf("CloseOutput failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new contents" {
		t.Errorf("file = %q, want %q", data, "new contents")
	}
	backup, err := os.ReadFile(path + "~")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "old contents" {
		t.Errorf("backup = %q, want %q", backup, "old contents")
	}
}

func TestKillOutputDiscards(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	s := New()
	if err := s.OpenOutput(path, false); err != nil {
		t.Fatalf("OpenOutput failed: %v", err)
	}
	if err := s.WritePage([]byte("doomed"), false); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}
	if err := s.KillOutput(); err != nil {
		t.Fatalf("KillOutput failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("output file should not exist after EK")
	}
	if s.OutputOpen() {
		t.Error("OutputOpen should report false after EK")
	}
}

func TestReadFileSearchesLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "macro.tec", "1UA")
	t.Setenv("TECO_LIBRARY", dir)

	s := New()
	data, err := s.ReadFile("macro.tec")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "1UA" {
		t.Errorf("contents = %q, want %q", data, "1UA")
	}
}

func TestSecondaryStreams(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "a.txt", "aaa")
	p2 := writeFile(t, dir, "b.txt", "bbb")

	s := New()
	if err := s.OpenInput(p1); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectInput(1); err != nil {
		t.Fatal(err)
	}
	if err := s.OpenInput(p2); err != nil {
		t.Fatal(err)
	}

	text, _, _, err := s.ReadPage()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "bbb" {
		t.Errorf("secondary stream page = %q, want %q", text, "bbb")
	}

	if err := s.SelectInput(0); err != nil {
		t.Fatal(err)
	}
	text, _, _, err = s.ReadPage()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "aaa" {
		t.Errorf("primary stream page = %q, want %q", text, "aaa")
	}
}

func TestMemoryFile(t *testing.T) {
	dir := t.TempDir()
	mem := filepath.Join(dir, "teco.mem")
	t.Setenv("TECO_MEMORY", mem)

	Remember("edited.txt")
	if got := Recall(); got != "edited.txt" {
		t.Errorf("Recall = %q, want %q", got, "edited.txt")
	}
}
