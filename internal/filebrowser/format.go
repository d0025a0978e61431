package filebrowser

import (
	"github.com/dustin/go-humanize"
)

// DisplayName is the name shown in the panel; directories end in "/".
func (e Entry) DisplayName() string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// SizeString is the size column. Directories show nothing.
func (e Entry) SizeString() string {
	if e.IsDir {
		return ""
	}
	return humanize.Bytes(uint64(max(e.Size, 0)))
}

// ModifiedString is the modified-time column, relative to now.
func (e Entry) ModifiedString() string {
	if e.Modified.IsZero() {
		return ""
	}
	return humanize.Time(e.Modified)
}
