package docs

import (
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// MimeType is the Drive MIME type of a Google Docs document.
const MimeType = "application/vnd.google-apps.document"

// URL returns the browser edit link for a document.
func URL(documentID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", documentID)
}

// PlainText concatenates the text runs of every non-blank paragraph,
// one paragraph per line. Table cells are flattened in reading order.
// Tabbed documents contribute every tab, depth first.
func PlainText(doc *docs.Document) string {
	if doc == nil {
		return ""
	}

	var paras []string
	if len(doc.Tabs) > 0 {
		for _, tab := range doc.Tabs {
			paras = collectTab(paras, tab)
		}
	} else if doc.Body != nil {
		paras = collect(paras, doc.Body.Content)
	}
	return strings.Join(paras, "\n")
}

func collectTab(paras []string, tab *docs.Tab) []string {
	if tab == nil {
		return paras
	}
	if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
		paras = collect(paras, tab.DocumentTab.Body.Content)
	}
	for _, child := range tab.ChildTabs {
		paras = collectTab(paras, child)
	}
	return paras
}

func collect(paras []string, content []*docs.StructuralElement) []string {
	for _, el := range content {
		switch {
		case el.Paragraph != nil:
			if text := paragraphText(el.Paragraph); strings.TrimSpace(text) != "" {
				paras = append(paras, text)
			}
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for _, cell := range row.TableCells {
					paras = collect(paras, cell.Content)
				}
			}
		}
	}
	return paras
}

func paragraphText(p *docs.Paragraph) string {
	var b strings.Builder
	for _, el := range p.Elements {
		if el.TextRun != nil {
			b.WriteString(el.TextRun.Content)
		}
	}
	return b.String()
}
