package assets

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/core"
)

// DirLoader resolves texture names to image files under Dir. A name may
// carry its own extension; otherwise each of Extensions is tried.
type DirLoader struct {
	Dir string
	Log *log.Logger
}

// NewDirLoader creates a loader rooted at dir. A nil logger discards output.
func NewDirLoader(dir string, logger *log.Logger) *DirLoader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DirLoader{Dir: dir, Log: logger}
}

// LoadImage implements the host image loader contract. Names that escape
// Dir, missing files and undecodable files all report absent.
func (l *DirLoader) LoadImage(name string) (core.ImageDescriptor, bool) {
	path, ok := l.resolve(name)
	if !ok {
		return core.ImageDescriptor{}, false
	}

	desc, err := DecodeFile(path)
	if err != nil {
		l.Log.Warn("texture unreadable", "name", name, "err", err)
		return core.ImageDescriptor{}, false
	}
	return desc, true
}

func (l *DirLoader) resolve(name string) (string, bool) {
	if name == "" || filepath.IsAbs(name) {
		return "", false
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", false
	}

	base := filepath.Join(l.Dir, clean)
	if filepath.Ext(clean) != "" {
		if isFile(base) {
			return base, true
		}
	}
	for _, ext := range Extensions {
		if p := base + ext; isFile(p) {
			return p, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
