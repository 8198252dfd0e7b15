package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", c)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(0, 0, 4, 4), '#', ColorGreen)
	s.Clear()

	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Errorf("screen should be empty after Clear, got %q", s.String())
	}
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if !strings.HasPrefix(s.Row(1)[2:], "Hello") {
		t.Errorf("row 1 = %q, expected Hello at column 2", s.Row(1))
	}

	// Clipped at right boundary
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCenteredUnicode(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "★★")

	if s.Get(4, 0) != '★' || s.Get(5, 0) != '★' {
		t.Errorf("centered text misplaced: %q", s.Row(0))
	}
}

func TestScreenDrawRectClipped(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(-2, 8, 4, 4), '#', ColorYellow)

	if s.Get(0, 8) != '#' || s.Get(1, 9) != '#' {
		t.Error("visible part of rect should be drawn")
	}
	if s.Get(2, 8) != ' ' {
		t.Error("rect should not extend past its right edge")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawHLine(0, 2, 5, 'C', ColorBlue)

	expected := "AAAAA\nBBBBB\nCCCCC"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Resize(8, 4)

	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if len(s.Row(3)) != 8 {
		t.Errorf("row length should be 8, got %d", len(s.Row(3)))
	}
	if s.Row(-1) != "        " {
		t.Errorf("out of bounds row should be spaces, got %q", s.Row(-1))
	}
}
