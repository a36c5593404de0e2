package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type AttachmentKind string

const (
	AttachmentText     AttachmentKind = "text"
	AttachmentImage    AttachmentKind = "image"
	AttachmentDocument AttachmentKind = "document"
)

// AllowedAttachmentTypes is the file picker filter.
var AllowedAttachmentTypes = []string{".jpg", ".png", ".pdf", ".txt"}

// MaxAttachmentSize caps how much of a file is read into memory.
const MaxAttachmentSize = 8 << 20

var (
	ErrUnsupportedAttachment = errors.New("unsupported attachment type")
	ErrAttachmentTooLarge    = errors.New("attachment too large")
)

// Attachment is a file staged by the picker and carried by one user message.
// Documents are referenced by name only; their bytes are not read.
type Attachment struct {
	Name string
	Path string
	Kind AttachmentKind
	Data []byte
}

func attachmentKind(path string) (AttachmentKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return AttachmentText, true
	case ".jpg", ".png":
		return AttachmentImage, true
	case ".pdf":
		return AttachmentDocument, true
	}
	return "", false
}

// LoadAttachment stats and, for text and images, reads the file at path.
func LoadAttachment(path string) (Attachment, error) {
	kind, ok := attachmentKind(path)
	if !ok {
		return Attachment{}, fmt.Errorf("%w: %s", ErrUnsupportedAttachment, filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to stat attachment: %w", err)
	}
	if info.IsDir() {
		return Attachment{}, fmt.Errorf("%w: %s is a directory", ErrUnsupportedAttachment, path)
	}

	a := Attachment{
		Name: filepath.Base(path),
		Path: path,
		Kind: kind,
	}
	if kind == AttachmentDocument {
		return a, nil
	}

	if info.Size() > MaxAttachmentSize {
		return Attachment{}, fmt.Errorf("%w: %s is %d bytes", ErrAttachmentTooLarge, a.Name, info.Size())
	}

	a.Data, err = os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read attachment: %w", err)
	}
	return a, nil
}
