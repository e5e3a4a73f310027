package goldmark

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     config.Flavor
		wantFlavor config.Flavor
	}{
		{"commonmark", config.FlavorCommonMark, config.FlavorCommonMark},
		{"gfm", config.FlavorGFM, config.FlavorGFM},
		{"invalid defaults to commonmark", "invalid", config.FlavorCommonMark},
		{"empty defaults to commonmark", "", config.FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	parser := New(config.FlavorCommonMark)
	ctx := context.Background()

	content := []byte("Hello\n\nWorld")
	snapshot, err := parser.Parse(ctx, "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Path != "test.md" {
		t.Errorf("Path = %q, want %q", snapshot.Path, "test.md")
	}

	if string(snapshot.Content) != string(content) {
		t.Errorf("Content mismatch")
	}

	content[0] = 'X'
	if snapshot.Content[0] == 'X' {
		t.Error("Content should be a copy, not the original slice")
	}

	if snapshot.Root == nil || snapshot.Root.Kind != mdast.NodeDocument {
		t.Fatal("expected a document root")
	}

	if got := len(mdast.FindByKind(snapshot.Root, mdast.NodeParagraph)); got != 2 {
		t.Errorf("paragraphs = %d, want 2", got)
	}

	if snapshot.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", snapshot.LineCount())
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	parser := New(config.FlavorCommonMark)

	snapshot, err := parser.Parse(context.Background(), "empty.md", []byte{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Root == nil {
		t.Fatal("expected non-nil root")
	}

	if snapshot.Root.HasChildren() {
		t.Error("empty document should have no children")
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	parser := New(config.FlavorCommonMark)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, "test.md", []byte("[^1]\n\n[^1]: x"))
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	parser := New(config.FlavorCommonMark)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := parser.Parse(ctx, "test.md", []byte("# Test"))
	if err == nil {
		t.Error("expected error for timed out context")
	}
}

func TestParser_Parse_ForwardReference(t *testing.T) {
	parser := New(config.FlavorGFM)

	content := []byte("a[^1]b\n\n[^1]: note\n")
	snapshot, err := parser.Parse(context.Background(), "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	refs := mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteReference)
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}

	ref := refs[0]
	if ref.Identifier() != "1" {
		t.Errorf("Identifier() = %q, want %q", ref.Identifier(), "1")
	}

	if ref.Range.StartOffset != 1 || ref.Range.EndOffset != 5 {
		t.Errorf("Range = %+v, want [1,5)", ref.Range)
	}

	if got := string(ref.Text()); got != "[^1]" {
		t.Errorf("Text() = %q, want %q", got, "[^1]")
	}

	defs := mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteDefinition)
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}

	if defs[0].Parent != snapshot.Root {
		t.Error("definition should be a top-level block")
	}

	if !slices.Equal(snapshot.Footnotes, []string{"1"}) {
		t.Errorf("Footnotes = %v, want [1]", snapshot.Footnotes)
	}
}

func TestParser_Parse_ReferenceOffsets(t *testing.T) {
	parser := New(config.FlavorCommonMark)

	content := []byte("a[^1] b[^2]\n\n[^1]: x\n\n[^2]: y\n")
	snapshot, err := parser.Parse(context.Background(), "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	refs := mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteReference)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}

	want := []int{1, 7}
	for i, ref := range refs {
		if ref.Range.StartOffset != want[i] {
			t.Errorf("refs[%d] starts at %d, want %d", i, ref.Range.StartOffset, want[i])
		}
	}
}

func TestParser_Parse_UndefinedCall(t *testing.T) {
	parser := New(config.FlavorGFM)

	snapshot, err := parser.Parse(context.Background(), "test.md", []byte("see [^x]\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if refs := mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteReference); len(refs) != 0 {
		t.Errorf("expected no references, got %d", len(refs))
	}
}

func TestParser_Parse_UnreferencedDefinitionDropped(t *testing.T) {
	parser := New(config.FlavorGFM)

	snapshot, err := parser.Parse(context.Background(), "test.md", []byte("[^a]: x\n\ntext\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if defs := mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteDefinition); len(defs) != 0 {
		t.Errorf("expected no definitions, got %d", len(defs))
	}

	if len(snapshot.Footnotes) != 0 {
		t.Errorf("Footnotes = %v, want none", snapshot.Footnotes)
	}
}

func TestParser_Parse_FileReferences(t *testing.T) {
	parser := New(config.FlavorGFM)

	snapshot, err := parser.Parse(context.Background(), "test.md", []byte("x[^n]\n\n[^n]: y\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	err = mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
		if n.File != snapshot {
			t.Errorf("%s node has incorrect File reference", n.Kind)
		}
		return nil
	})
	if err != nil {
		t.Errorf("walk error: %v", err)
	}
}

func TestParser_ImplementsInterface(_ *testing.T) {
	// Compile-time check that Parser implements lint.Parser.
	var _ lint.Parser = (*Parser)(nil)
}

func TestParser_Parse_Deterministic(t *testing.T) {
	parser := New(config.FlavorGFM)
	ctx := context.Background()

	content := []byte("One[^a] two[^b].\n\n[^a]: A\n\n[^b]: B\n")

	snapshots := make([]*mdast.FileSnapshot, 0, 3)
	for range 3 {
		snapshot, err := parser.Parse(ctx, "test.md", content)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	nodeCount := countNodes(snapshots[0].Root)
	for i, s := range snapshots {
		if countNodes(s.Root) != nodeCount {
			t.Errorf("snapshot[%d] node count = %d, want %d", i, countNodes(s.Root), nodeCount)
		}
	}
}

// countNodes counts all nodes in the tree.
func countNodes(root *mdast.Node) int {
	count := 0
	err := mdast.Walk(root, func(_ *mdast.Node) error {
		count++
		return nil
	})
	if err != nil {
		return 0
	}
	return count
}
