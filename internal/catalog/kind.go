package catalog

import (
	"path"
	"strings"
)

// Kind is a closed set; every switch over it should handle all six values.
type Kind int

const (
	KindOther Kind = iota
	KindImage
	KindDocument
	KindArchive
	KindAudio
	KindVideo
)

var kindNames = map[Kind]string{
	KindOther:    "other",
	KindImage:    "image",
	KindDocument: "document",
	KindArchive:  "archive",
	KindAudio:    "audio",
	KindVideo:    "video",
}

func (k Kind) String() string {
	switch k {
	case KindImage, KindDocument, KindArchive, KindAudio, KindVideo, KindOther:
		return kindNames[k]
	default:
		return "other"
	}
}

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindImage, KindDocument, KindArchive, KindAudio, KindVideo, KindOther}
}

// ParseKind accepts the String form of a kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindOther, false
}

var extKinds = map[string]Kind{
	"jpg": KindImage, "jpeg": KindImage, "png": KindImage, "gif": KindImage, "webp": KindImage,
	"bmp": KindImage, "svg": KindImage, "heic": KindImage,

	"pdf": KindDocument, "doc": KindDocument, "docx": KindDocument, "xls": KindDocument,
	"xlsx": KindDocument, "ppt": KindDocument, "pptx": KindDocument, "txt": KindDocument,
	"md": KindDocument, "csv": KindDocument, "json": KindDocument, "rtf": KindDocument,
	"odt": KindDocument,

	"zip": KindArchive, "rar": KindArchive, "7z": KindArchive, "tar": KindArchive,
	"gz": KindArchive, "tgz": KindArchive, "bz2": KindArchive, "xz": KindArchive,

	"mp3": KindAudio, "wav": KindAudio, "flac": KindAudio, "aac": KindAudio,
	"ogg": KindAudio, "m4a": KindAudio,

	"mp4": KindVideo, "avi": KindVideo, "mov": KindVideo, "mkv": KindVideo, "webm": KindVideo,
}

// Ext returns the lower-case extension of name without the dot.
func Ext(name string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}

// KindOf classifies by extension first and falls back to the stored type.
func KindOf(name, typ string) Kind {
	if k, ok := extKinds[Ext(name)]; ok {
		return k
	}
	switch typ {
	case TypeImage:
		return KindImage
	case TypeText:
		return KindDocument
	}
	return KindOther
}
