package ui

import (
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"catview/domain/catalog"
)

// renderDefinitionHTML converts a definition field to HTML. Catalog sheets
// carry markdown-ish text in their definition columns; placeholders pass
// through as plain paragraphs.
func renderDefinitionHTML(definition string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	return string(markdown.ToHTML([]byte(definition), p, renderer))
}

// productCard is the JSON detail view for one matched record
type productCard struct {
	Index          int    `json:"index"`
	ProductName    string `json:"product_name"`
	Definition     string `json:"definition"`
	DefinitionHTML string `json:"definition_html"`
	Link           string `json:"link,omitempty"`
	HasImage       bool   `json:"has_image"`
	ImageURL       string `json:"image_url,omitempty"`
	ImageStatus    string `json:"image_status"`
}

// buildProductCard assembles the API detail card from the domain card
func buildProductCard(sessionID string, index int, row catalog.Row, mapping catalog.Mapping) productCard {
	card := catalog.BuildCard(row, mapping)

	out := productCard{
		Index:          index,
		ProductName:    card.ProductName,
		Definition:     card.Definition,
		DefinitionHTML: renderDefinitionHTML(card.Definition),
		Link:           card.Link,
		HasImage:       card.HasImage,
		ImageStatus:    catalog.PlaceholderNoImage,
	}
	if card.HasImage {
		out.ImageURL = fmt.Sprintf("/api/sessions/%s/results/%d/image", sessionID, index)
		out.ImageStatus = "available"
	}
	return out
}
