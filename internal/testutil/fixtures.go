package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// BuildPDF returns a minimal PDF with one page per entry of pages. Each page
// draws its string with a single Tj operator, so extracted text equals the
// input for printable ASCII.
func BuildPDF(pages ...string) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font; pages start at 4 as (page, content) pairs.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, text := range pages {
		contentID := 5 + 2*i
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDFString(text))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentID),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)

	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// BuildPPTX returns a minimal PowerPoint archive. Each slide is a list of
// paragraphs; each paragraph is a list of runs.
func BuildPPTX(slides ...[][]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, paragraphs := range slides {
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", i+1))
		if err != nil {
			panic(err)
		}
		w.Write([]byte(slideXML(paragraphs)))
	}

	w, err := zw.Create("[Content_Types].xml")
	if err != nil {
		panic(err)
	}
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func slideXML(paragraphs [][]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:cSld><p:spTree><p:sp><p:txBody><a:bodyPr/>`)
	for _, runs := range paragraphs {
		b.WriteString("<a:p>")
		for _, run := range runs {
			b.WriteString("<a:r><a:rPr lang=\"en-US\"/><a:t>")
			b.WriteString(xmlEscape(run))
			b.WriteString("</a:t></a:r>")
		}
		b.WriteString("</a:p>")
	}
	b.WriteString(`</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`)
	return b.String()
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
