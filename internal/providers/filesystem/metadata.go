package filesystem

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Describe returns listing metadata for the named entries of dir.
// Entries that vanished since enumeration are reported as files with zero size.
func (l *Local) Describe(ctx context.Context, dir string, names []string, detectMime bool) []EntryInfo {
	infos := make([]EntryInfo, 0, len(names))

	for _, name := range names {
		fullPath := filepath.Join(dir, name)
		entry := EntryInfo{Name: name, Type: TypeFile}

		info, err := os.Stat(fullPath)
		if err != nil {
			infos = append(infos, entry)
			continue
		}

		entry.Modified = info.ModTime()
		if info.IsDir() {
			entry.Type = TypeDirectory
		} else {
			entry.Size = info.Size()
			if detectMime {
				if mtype, err := mimetype.DetectFile(fullPath); err == nil {
					entry.MimeType = mtype.String()
				}
			}
		}

		infos = append(infos, entry)
	}

	return infos
}
