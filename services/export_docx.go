package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"ak_dashboard/models"
)

// buildDocx собирает документ Word вручную: docx — это zip-пакет OOXML,
// достаточно content types, rels и word/document.xml.
func buildDocx(payload models.DocumentPayload) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml": docxContentTypes,
		"_rels/.rels":         docxRels,
		"word/document.xml":   docxDocument(payload),
	}
	for name, content := range parts {
		f, err := w.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write([]byte(content)); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// docxDocument строит word/document.xml: те же строки и в том же порядке,
// что и в предпросмотре, только в виде абзацев.
func docxDocument(payload models.DocumentPayload) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, line := range documentLines(payload) {
		b.WriteString(docxParagraph(line))
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func docxParagraph(line documentLine) string {
	var b strings.Builder
	b.WriteString("<w:p>")

	if line.Center || line.Heading {
		b.WriteString("<w:pPr>")
		if line.Center {
			b.WriteString(`<w:jc w:val="center"/>`)
		}
		b.WriteString("</w:pPr>")
	}

	// Многострочные комментарии разбиваются переносами внутри абзаца.
	b.WriteString("<w:r>")
	if line.Heading {
		b.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	for i, part := range strings.Split(line.Text, "\n") {
		if i > 0 {
			b.WriteString("<w:br/>")
		}
		b.WriteString(`<w:t xml:space="preserve">` + xmlEscape(part) + `</w:t>`)
	}
	b.WriteString("</w:r></w:p>")
	return b.String()
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
