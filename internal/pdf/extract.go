package pdf

import (
	"github.com/gen2brain/go-fitz"
)

// ExtractText returns the plain text of each page of the document.
func ExtractText(contents []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(contents)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, err
		}
		pages = append(pages, text)
	}
	return pages, nil
}
