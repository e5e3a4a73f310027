package mdast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/footmark/pkg/mdast"
)

func exportFixture() *mdast.Node {
	content := []byte("See [^a].\n")
	file := mdast.NewFileSnapshot("notes.md", content)

	root := mdast.NewDocument()
	mdast.SetRange(root, 0, len(content))
	para := mdast.NewNode(mdast.NodeParagraph)
	mdast.SetRange(para, 0, 9)
	text := mdast.NewText("See ")
	mdast.SetRange(text, 0, 4)
	ref := mdast.NewFootnoteReference("a", "A")
	mdast.SetRange(ref, 4, 8)

	mdast.AppendChild(root, para)
	mdast.AppendChild(para, text)
	mdast.AppendChild(para, ref)
	mdast.AppendChild(para, mdast.NewText("."))
	mdast.SetFile(root, file)

	return root
}

func TestExport(t *testing.T) {
	t.Parallel()

	got := mdast.Export(exportFixture())
	require.NotNil(t, got)

	assert.Equal(t, "Document", got.Type)
	require.Len(t, got.Children, 1)

	para := got.Children[0]
	assert.Equal(t, "Paragraph", para.Type)
	require.Len(t, para.Children, 3)

	ref := para.Children[1]
	assert.Equal(t, "FootnoteReference", ref.Type)
	assert.Equal(t, "a", ref.Identifier)
	assert.Equal(t, "A", ref.Label)
	require.NotNil(t, ref.Position)
	assert.Equal(t, mdast.ExportPoint{Line: 1, Column: 5, Offset: 4}, ref.Position.Start)
	assert.Equal(t, mdast.ExportPoint{Line: 1, Column: 9, Offset: 8}, ref.Position.End)

	assert.Nil(t, para.Children[2].Position, "synthetic nodes carry no position")
	assert.Equal(t, ".", para.Children[2].Value)
}

func TestExport_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, mdast.Export(nil))
}

func TestExport_Encodings(t *testing.T) {
	t.Parallel()

	exported := mdast.Export(exportFixture())

	data, err := json.Marshal(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"FootnoteReference","identifier":"a","label":"A"`)
	assert.NotContains(t, string(data), `"value":""`)

	out, err := yaml.Marshal(exported)
	require.NoError(t, err)
	assert.Contains(t, string(out), "type: FootnoteReference")
	assert.Contains(t, string(out), "identifier: a")
}
