package syntax

import (
	"strings"
	"testing"
)

const docWithTwoTables = `# Title

Some prose before the table.

| Name  | Age |
|-------|-----|
| Alice | 30  |

More prose.

| X | Y |
|---|---|
| 1 | 2 |
`

func TestBuildTableSpans(t *testing.T) {
	tree := NewBuilder().Build(docWithTwoTables)
	tables := tree.NodesByName(NameTable)
	if len(tables) != 2 {
		t.Fatalf("found %d tables, want 2", len(tables))
	}

	t.Run("table text covers whole lines", func(t *testing.T) {
		want := "| Name  | Age |\n|-------|-----|\n| Alice | 30  |"
		if got := tables[0].Text(docWithTwoTables); got != want {
			t.Errorf("table text = %q, want %q", got, want)
		}
	})

	t.Run("document order", func(t *testing.T) {
		if tables[0].From() >= tables[1].From() {
			t.Errorf("tables out of order: %s before %s",
				tables[0].Span(), tables[1].Span())
		}
	})

	t.Run("row structure", func(t *testing.T) {
		tbl := tables[0]
		var names []string
		for _, c := range tbl.Children() {
			names = append(names, c.Name())
		}
		want := []string{NameTableHeader, NameTableDelimiter, NameTableRow}
		if len(names) != len(want) {
			t.Fatalf("children = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("child %d = %s, want %s", i, names[i], want[i])
			}
		}
	})
}

func TestBuildRowTokens(t *testing.T) {
	source := "| a | b |\n|---|---|\n| c | d |\n"
	tree := NewBuilder().Build(source)
	tbl := tree.NodesByName(NameTable)[0]
	header := tbl.FirstChild()
	if header.Name() != NameTableHeader {
		t.Fatalf("first child is %s, want TableHeader", header.Name())
	}

	var delims, cells int
	for _, tok := range header.Children() {
		switch tok.Name() {
		case NameTableDelimiter:
			delims++
			if tok.Text(source) != "|" {
				t.Errorf("delimiter token text = %q", tok.Text(source))
			}
		case NameTableCell:
			cells++
		}
	}
	if delims != 3 {
		t.Errorf("header has %d delimiter tokens, want 3", delims)
	}
	if cells != 2 {
		t.Errorf("header has %d cells, want 2", cells)
	}
}

func TestBuildEscapedPipe(t *testing.T) {
	source := "| a\\|b | c |\n|------|---|\n| 1 | 2 |\n"
	tree := NewBuilder().Build(source)
	tbl := tree.NodesByName(NameTable)[0]
	header := tbl.FirstChild()

	var cellTexts []string
	for _, tok := range header.Children() {
		if tok.Name() == NameTableCell {
			cellTexts = append(cellTexts, tok.Text(source))
		}
	}
	if len(cellTexts) != 2 {
		t.Fatalf("header cells = %v, want 2 cells", cellTexts)
	}
	if cellTexts[0] != "a\\|b" {
		t.Errorf("cell 0 = %q, want %q", cellTexts[0], "a\\|b")
	}
}

func TestBuildCellInlineChildren(t *testing.T) {
	source := "| **bold** |\n|----------|\n| plain |\n"
	tree := NewBuilder().Build(source)
	tbl := tree.NodesByName(NameTable)[0]

	var cell *Node
	tbl.Walk(func(n *Node) bool {
		if cell == nil && n.Name() == NameTableCell {
			cell = n
		}
		return true
	})
	if cell == nil {
		t.Fatal("no cell found")
	}
	if cell.ChildCount() == 0 {
		t.Fatal("cell has no inline children")
	}
	// The emphasis node's inner text must land on the word itself.
	var found bool
	cell.Walk(func(n *Node) bool {
		if n.Text(source) == "bold" {
			found = true
		}
		return true
	})
	if !found {
		t.Error("no descendant spans the emphasized word")
	}
}

func TestNodeAt(t *testing.T) {
	tree := NewBuilder().Build(docWithTwoTables)
	tbl := tree.NodesByName(NameTable)[0]

	if got := tree.NodeAt(NameTable, tbl.Span()); got != tbl {
		t.Errorf("NodeAt(%s) = %v, want the table itself", tbl.Span(), got)
	}
	if got := tree.NodeAt(NameTable, Span{From: tbl.From() + 1, To: tbl.To()}); got != nil {
		t.Errorf("NodeAt with shifted span = %v, want nil", got)
	}
}

func TestNodesByNameIn(t *testing.T) {
	tree := NewBuilder().Build(docWithTwoTables)
	tables := tree.NodesByName(NameTable)

	within := Span{From: tables[1].From(), To: tables[1].To()}
	got := tree.NodesByNameIn(NameTable, within)
	if len(got) != 1 || got[0] != tables[1] {
		t.Errorf("NodesByNameIn returned %d tables, want only the second", len(got))
	}
}

func TestBuildNoTables(t *testing.T) {
	tree := NewBuilder().Build("just a paragraph\n\nand another\n")
	if tables := tree.NodesByName(NameTable); len(tables) != 0 {
		t.Errorf("found %d tables in plain prose", len(tables))
	}
	if tree.Root().Name() != NameDocument {
		t.Errorf("root = %s, want Document", tree.Root().Name())
	}
}

func TestSpan(t *testing.T) {
	s := NewSpan(3, 8)
	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5", s.Len())
	}
	if s.IsEmpty() {
		t.Error("non-empty span reported empty")
	}
	if !s.Contains(3) || s.Contains(8) {
		t.Error("Contains mishandles half-open bounds")
	}
	if !s.Overlaps(Span{From: 7, To: 9}) {
		t.Error("overlapping spans not detected")
	}
	if s.Overlaps(Span{From: 8, To: 10}) {
		t.Error("adjacent spans reported overlapping")
	}
	if got := s.Shift(2); got != (Span{From: 5, To: 10}) {
		t.Errorf("Shift = %v", got)
	}
	if !strings.Contains(s.String(), "3") {
		t.Errorf("String = %q", s.String())
	}
}
