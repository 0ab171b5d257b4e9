package downloads

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

const fallbackName = "download"

// DefaultDir is the platform's downloads directory.
func DefaultDir() string {
	return xdg.UserDirs.Download
}

// Saver writes accepted files into Dir. It never overwrites: a taken name
// gets a _<unix time> suffix, then a counter.
type Saver struct {
	Dir string

	now func() time.Time
}

func NewSaver(dir string) *Saver {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Saver{Dir: dir, now: time.Now}
}

// Save stores data under the base of name and returns the path written.
func (s *Saver) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	base := ExtractFileName(name)
	if base == "" || base == "." || base == ".." {
		base = fallbackName
	}

	stamp := strconv.FormatInt(s.now().Unix(), 10)
	candidates := []string{base, BuildCollisionName(base, stamp)}

	for i := 0; ; i++ {
		var candidate string
		if i < len(candidates) {
			candidate = candidates[i]
		} else {
			candidate = BuildCollisionName(base, stamp+"_"+strconv.Itoa(i-1))
		}

		path := filepath.Join(s.Dir, candidate)
		err := writeExclusive(path, data)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("saving %s: %w", candidate, err)
		}
	}
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
