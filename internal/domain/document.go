package domain

import "strings"

// DocumentKind identifies which extractor handles an upload.
type DocumentKind string

const (
	DocumentKindPDF  DocumentKind = "pdf"
	DocumentKindPPTX DocumentKind = "pptx"
)

// FormField returns the multipart field an upload of this kind arrives in.
func (k DocumentKind) FormField() string {
	return string(k) + "_file"
}

// Upload is a document received from a client. Only the filename extension
// is checked; content is trusted until extraction.
type Upload struct {
	Filename string
	Data     []byte
	Kind     DocumentKind
}

// FileExtension returns the lowercased text after the last '.' of filename,
// or "" if there is none.
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// ValidateUpload checks that an upload is present and has the extension of
// kind. The returned errors carry the client-facing messages.
func ValidateUpload(u *Upload, kind DocumentKind) error {
	missing, wrongType := ErrNoPDFUploaded, ErrNotPDF
	if kind == DocumentKindPPTX {
		missing, wrongType = ErrNoPPTXUploaded, ErrNotPPTX
	}

	if u == nil {
		return missing
	}
	if FileExtension(u.Filename) != string(kind) {
		return wrongType
	}
	return nil
}
