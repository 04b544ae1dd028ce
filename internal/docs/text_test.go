package docs

import (
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func para(runs ...string) *docs.StructuralElement {
	p := &docs.Paragraph{}
	for _, r := range runs {
		p.Elements = append(p.Elements, &docs.ParagraphElement{TextRun: &docs.TextRun{Content: r}})
	}
	return &docs.StructuralElement{Paragraph: p}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		doc  *docs.Document
		want string
	}{
		{
			name: "nil",
			doc:  nil,
			want: "",
		},
		{
			name: "legacy body skips blank paragraphs",
			doc: &docs.Document{Body: &docs.Body{Content: []*docs.StructuralElement{
				{SectionBreak: &docs.SectionBreak{}},
				para("Hello ", "world\n"),
				para("\n"),
				para("Second\n"),
			}}},
			want: "Hello world\n\nSecond\n",
		},
		{
			name: "table cells in reading order",
			doc: &docs.Document{Body: &docs.Body{Content: []*docs.StructuralElement{
				{Table: &docs.Table{TableRows: []*docs.TableRow{
					{TableCells: []*docs.TableCell{
						{Content: []*docs.StructuralElement{para("a\n")}},
						{Content: []*docs.StructuralElement{para("b\n")}},
					}},
				}}},
			}}},
			want: "a\n\nb\n",
		},
		{
			name: "tabs depth first",
			doc: &docs.Document{Tabs: []*docs.Tab{
				{
					DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{para("one\n")}}},
					ChildTabs: []*docs.Tab{
						{DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{para("child\n")}}}},
					},
				},
				{DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{para("two\n")}}}},
			}},
			want: "one\n\nchild\n\ntwo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.doc); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	if got := URL("abc"); got != "https://docs.google.com/document/d/abc/edit" {
		t.Errorf("URL() = %q", got)
	}
}
