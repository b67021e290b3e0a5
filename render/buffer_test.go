package render

import "testing"

func TestBufferSetString(t *testing.T) {
	b := NewBuffer(10, 2)
	next := b.SetString(0, 0, "hello", Style{})
	if next != 5 {
		t.Errorf("SetString() next x = %v, want 5", next)
	}
	if got := b.Row(0); got != "hello     " {
		t.Errorf("Row(0) = %q, want %q", got, "hello     ")
	}
}

func TestBufferSetStringClipsAtRowEnd(t *testing.T) {
	b := NewBuffer(3, 1)
	b.SetString(0, 0, "hello", Style{})
	if got := b.Row(0); got != "hel" {
		t.Errorf("Row(0) = %q, want %q", got, "hel")
	}
}

func TestBufferWideCluster(t *testing.T) {
	b := NewBuffer(6, 1)
	next := b.SetString(0, 0, "日本", Style{})
	if next != 4 {
		t.Errorf("SetString() next x = %v, want 4", next)
	}

	lead, _ := b.Get(0, 0)
	if lead.Content != "日" || lead.Width != 2 {
		t.Errorf("lead cell = %+v, want 日 with width 2", lead)
	}
	cont, _ := b.Get(1, 0)
	if !cont.IsContinuation() {
		t.Errorf("cell (1,0) should be a continuation, got %+v", cont)
	}
}

func TestBufferOverwriteWideClusterBlanksPartner(t *testing.T) {
	b := NewBuffer(4, 1)
	b.SetString(0, 0, "日", Style{})

	// Writing over the continuation cell must blank the lead too.
	b.Set(1, 0, NewCell('x'))

	lead, _ := b.Get(0, 0)
	if lead.Content != "" {
		t.Errorf("lead cell should be blanked, got %+v", lead)
	}
	cell, _ := b.Get(1, 0)
	if cell.Content != "x" {
		t.Errorf("cell (1,0) = %+v, want x", cell)
	}
}

func TestBufferWideClusterDroppedAtRowEnd(t *testing.T) {
	b := NewBuffer(3, 1)
	b.SetString(2, 0, "日", Style{})
	cell, _ := b.Get(2, 0)
	if cell.Content != "" {
		t.Errorf("wide cluster at row end should be dropped, got %+v", cell)
	}
}

func TestBufferResizePreservesContent(t *testing.T) {
	b := NewBuffer(5, 2)
	b.SetString(0, 0, "abcde", Style{})
	b.SetString(0, 1, "fghij", Style{})

	small := b.Resize(3, 1)
	if got := small.Row(0); got != "abc" {
		t.Errorf("resized Row(0) = %q, want %q", got, "abc")
	}

	big := b.Resize(7, 3)
	if got := big.Row(1); got != "fghij  " {
		t.Errorf("grown Row(1) = %q, want %q", got, "fghij  ")
	}
}

func TestBufferRowEqual(t *testing.T) {
	a := NewBuffer(4, 1)
	b := NewBuffer(4, 1)
	a.SetString(0, 0, "same", Style{})
	b.SetString(0, 0, "same", Style{})
	if !a.RowEqual(b, 0) {
		t.Error("identical rows should compare equal")
	}

	b.Set(0, 0, NewCell('X'))
	if a.RowEqual(b, 0) {
		t.Error("differing rows should not compare equal")
	}

	// Same content but different style is a different row.
	c := NewBuffer(4, 1)
	c.SetString(0, 0, "same", Style{Bold: true})
	if a.RowEqual(c, 0) {
		t.Error("same text with different style should not compare equal")
	}
}

func TestBufferOutOfBounds(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Set(-1, 0, NewCell('x'))
	b.Set(0, 5, NewCell('x'))
	if _, ok := b.Get(2, 0); ok {
		t.Error("Get out of bounds should report false")
	}
}

func TestBufferZeroDimensionsClamped(t *testing.T) {
	b := NewBuffer(0, 0)
	if b.Width() != 1 || b.Height() != 1 {
		t.Errorf("NewBuffer(0,0) = %dx%d, want 1x1", b.Width(), b.Height())
	}
}
