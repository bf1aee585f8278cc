package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// Upload kinds and the file extensions each accepts.
var (
	ResumeKind   = Kind{Prefix: "resumes", MaxBytes: 5 << 20, Extensions: []string{".pdf", ".doc", ".docx"}}
	PictureKind  = Kind{Prefix: "profile_pictures", MaxBytes: 2 << 20, Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}}
	LogoKind     = Kind{Prefix: "company_logos", MaxBytes: 2 << 20, Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}}
	DocumentKind = Kind{Prefix: "application_documents", MaxBytes: 10 << 20, Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".jpg", ".jpeg", ".png"}}
)

type Kind struct {
	Prefix     string
	MaxBytes   int64
	Extensions []string
}

// Accepts reports whether filename has an allowed extension.
func (k Kind) Accepts(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, allowed := range k.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// NewKey builds a unique object key under the kind's prefix, keeping only
// the extension of the client-supplied name.
func (k Kind) NewKey(owner uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, `\`, "/"))))
	return path.Join(k.Prefix, owner.String(), uuid.NewString()+ext)
}
