package textbuf

import "testing"

func TestInsertAndDot(t *testing.T) {
	b := New()
	if err := b.Insert([]byte("hello")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if b.Size() != 5 {
		t.Errorf("Size = %d, want 5", b.Size())
	}
	if b.Dot() != 5 {
		t.Errorf("Dot = %d, want 5 (after inserted text)", b.Dot())
	}

	b.SetDot(0)
	if err := b.Insert([]byte(">> ")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := string(b.Text(0, b.Size())); got != ">> hello" {
		t.Errorf("Text = %q, want %q", got, ">> hello")
	}
}

func TestDeleteForwardAndBackward(t *testing.T) {
	b := New([]byte("abcdef"))
	b.SetDot(3)
	if err := b.Delete(2); err != nil {
		t.Fatalf("Delete(2) failed: %v", err)
	}
	if got := string(b.Text(0, b.Size())); got != "abcf" {
		t.Errorf("Text = %q, want %q", got, "abcf")
	}

	if err := b.Delete(-2); err != nil {
		t.Fatalf("Delete(-2) failed: %v", err)
	}
	if got := string(b.Text(0, b.Size())); got != "af" {
		t.Errorf("Text = %q, want %q", got, "af")
	}
	if b.Dot() != 1 {
		t.Errorf("Dot = %d, want 1", b.Dot())
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	b := New([]byte("abc"))
	if err := b.Delete(10); err == nil {
		t.Error("expected error deleting past end")
	}
	if err := b.Delete(-1); err == nil {
		t.Error("expected error deleting before start")
	}
}

func TestSetDotBounds(t *testing.T) {
	b := New([]byte("abc"))
	if !b.SetDot(3) {
		t.Error("SetDot(3) should succeed at end of buffer")
	}
	if b.SetDot(4) {
		t.Error("SetDot(4) should fail past end")
	}
	if b.SetDot(-1) {
		t.Error("SetDot(-1) should fail")
	}
}

func TestCharAt(t *testing.T) {
	b := New([]byte("abc"))
	if c, ok := b.CharAt(1); !ok || c != 'b' {
		t.Errorf("CharAt(1) = %q,%v, want 'b',true", c, ok)
	}
	if _, ok := b.CharAt(3); ok {
		t.Error("CharAt(3) should report out of range")
	}
}

func TestLineDelta(t *testing.T) {
	b := New([]byte("one\ntwo\nthree\n"))
	b.SetDot(5) // inside "two"

	cases := []struct {
		n    int
		want int
	}{
		{0, -1}, // start of current line
		{1, 3},  // start of next line
		{2, 9},  // past the final line feed
		{-1, -5}, // start of previous line
	}
	for _, tc := range cases {
		if got := b.LineDelta(tc.n); got != tc.want {
			t.Errorf("LineDelta(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestLineDeltaAtBufferEnds(t *testing.T) {
	b := New([]byte("no newline"))
	b.SetDot(4)
	if got := b.LineDelta(1); got != 6 {
		t.Errorf("LineDelta(1) = %d, want 6 (to end of buffer)", got)
	}
	if got := b.LineDelta(0); got != -4 {
		t.Errorf("LineDelta(0) = %d, want -4 (to start of buffer)", got)
	}
}
