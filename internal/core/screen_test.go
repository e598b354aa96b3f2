package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Errorf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}
	if s.GetCell(5, 5).Color != ColorDefault {
		t.Error("Set should use the default color")
	}

	s.SetCell(2, 3, '@', ColorBrightYellow)
	if c := s.GetCell(2, 3); c.Rune != '@' || c.Color != ColorBrightYellow {
		t.Errorf("GetCell(2, 3) = %+v", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetCell(0, -1, 'A', ColorRed)
	s.SetCell(0, 100, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if c := s.GetCell(100, 0); c.Color != ColorDefault || c.Rune != ' ' {
		t.Errorf("Out of bounds GetCell should be blank, got %+v", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetCell(x, y, 'X', ColorRed)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.Row(1); got != "  Hello             " {
		t.Errorf("Row(1) = %q", got)
	}

	// Clipped at the right edge
	s.DrawTextColor(17, 2, "World", ColorGreen)
	if got := s.Row(2); got != "                 Wor" {
		t.Errorf("Row(2) = %q", got)
	}
	if s.GetCell(18, 2).Color != ColorGreen {
		t.Error("DrawTextColor should color its cells")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "ABC", ColorCyan)

	if got := s.Row(0); got != "    ABC    " {
		t.Errorf("Row(0) = %q, expected centered text", got)
	}

	// Multibyte runes count once
	s.Clear()
	s.DrawTextCentered(0, "★★★", ColorYellow)
	if s.Get(4, 0) != '★' || s.Get(6, 0) != '★' {
		t.Errorf("Row(0) = %q, expected centered stars", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorBlue)

	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	for y, w := range want {
		if got := s.Row(y); got != w {
			t.Errorf("Row(%d) = %q, expected %q", y, got, w)
		}
	}
	if s.GetCell(0, 0).Color != ColorBlue {
		t.Error("box corner should carry the box color")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawHLine(2, 1, 5, '=', ColorGray)

	if got := s.Row(1); got != "  =====   " {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cde")

	if got := s.String(); got != "ab \ncde" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetCell(1, 1, 'X', ColorRed)
	s.Set(4, 4, 'Y')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("content inside the new bounds should survive, got %+v", c)
	}

	s.Resize(6, 4)
	if s.Get(1, 1) != 'X' {
		t.Error("content should survive growing")
	}
	if s.Get(5, 3) != ' ' {
		t.Error("new area should be blank")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "test")

	if got := s.Row(0); got != "test" {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(5); got != strings.Repeat(" ", 4) {
		t.Errorf("out of range Row = %q, expected blanks", got)
	}
}
