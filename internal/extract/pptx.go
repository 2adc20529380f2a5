package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const drawingMLNamespace = "http://schemas.openxmlformats.org/drawingml/2006/main"

var slidePath = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// maxSlideBytes caps the decompressed size of a single slide part.
var maxSlideBytes int64 = 32 << 20

// ErrSlideTooLarge is returned when a slide decompresses past maxSlideBytes.
var ErrSlideTooLarge = errors.New("slide exceeds size limit")

// PPTXExtractor extracts text runs from the slides of a PowerPoint deck.
type PPTXExtractor struct{}

func NewPPTXExtractor() *PPTXExtractor {
	return &PPTXExtractor{}
}

type slideFile struct {
	number int
	file   *zip.File
}

// Extract returns the text of every slide in slide order. Runs of a
// paragraph are concatenated; each non-empty paragraph ends with a newline.
func (e *PPTXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PPTX: %w", err)
	}

	var slides []slideFile
	for _, f := range zr.File {
		m := slidePath.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slideFile{number: n, file: f})
	}
	if len(slides) == 0 {
		return "", errors.New("PPTX contains no slides")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	var b strings.Builder
	for _, s := range slides {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := readSlide(s.file, &b); err != nil {
			return "", fmt.Errorf("slide %d: %w", s.number, err)
		}
	}

	return b.String(), nil
}

func readSlide(f *zip.File, b *strings.Builder) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	lr := &io.LimitedReader{R: rc, N: maxSlideBytes + 1}
	dec := xml.NewDecoder(lr)
	var (
		inText    bool
		paragraph strings.Builder
	)

	for {
		tok, err := dec.Token()
		if lr.N <= 0 {
			return ErrSlideTooLarge
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != drawingMLNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				paragraph.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			if t.Name.Space != drawingMLNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if paragraph.Len() > 0 {
					b.WriteString(paragraph.String())
					b.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}
}
