// Package filetype maps file paths to display categories and colors.
package filetype

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ANSI 256 color tags used across the report
const (
	ColorDir   = "12"
	ColorError = "9"
	ColorOther = "59"
)

// Style is the display category of a file
type Style struct {
	Label string
	Color string
}

var (
	Archive = Style{Label: "archive", Color: "5"}
	Image   = Style{Label: "image", Color: "14"}
	Audio   = Style{Label: "audio", Color: "10"}
	Video   = Style{Label: "video", Color: "11"}
	Code    = Style{Label: "code", Color: "4"}
	Doc     = Style{Label: "doc", Color: "2"}
	Other   = Style{Label: "other", Color: "7"}
)

var byExtension = map[string]Style{}

func init() {
	register(Archive, ".zip", ".tar", ".gz", ".bz2", ".xz", ".7z", ".rar")
	register(Image, ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tiff")
	register(Audio, ".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a")
	register(Video, ".mp4", ".mkv", ".mov", ".avi", ".webm")
	register(Code, ".py", ".rs", ".go", ".js", ".ts", ".tsx", ".java", ".c", ".cpp", ".h", ".hpp")
	register(Doc, ".md", ".txt", ".pdf", ".doc", ".docx", ".rtf")
}

func register(s Style, exts ...string) {
	for _, ext := range exts {
		byExtension[ext] = s
	}
}

// Classify returns the style for path by its lowercase extension
func Classify(path string) Style {
	if s, ok := byExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return Other
}

// Classifier classifies files, optionally sniffing the content of files
// without a known extension.
type Classifier struct {
	Sniff bool
}

// Classify returns the style for path. With Sniff set, files whose extension
// is unknown are classified by their magic number.
func (c Classifier) Classify(path string) Style {
	s := Classify(path)
	if s != Other || !c.Sniff || filepath.Ext(path) != "" {
		return s
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Other
	}
	return fromMIME(mtype)
}

// fromMIME maps a detected MIME type and its ancestors to a style
func fromMIME(mtype *mimetype.MIME) Style {
	for m := mtype; m != nil; m = m.Parent() {
		if s, ok := byExtension[m.Extension()]; ok {
			return s
		}
		family, _, _ := strings.Cut(m.String(), "/")
		switch family {
		case "image":
			return Image
		case "audio":
			return Audio
		case "video":
			return Video
		}
	}
	return Other
}
