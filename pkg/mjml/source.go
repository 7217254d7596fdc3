package mjml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// FragmentSource resolves a fragment name to its source text.
type FragmentSource interface {
	Fragment(ctx context.Context, name string) (string, error)
}

// FragmentSourceFunc adapts a plain function to the FragmentSource interface.
type FragmentSourceFunc func(ctx context.Context, name string) (string, error)

func (f FragmentSourceFunc) Fragment(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// fragmentDir is the path convention fragments are stored under.
const fragmentDir = "mjml"

// FSSource serves fragments from a file system following the
// "mjml/{name}.mjml" path convention. It works with embedded file systems as
// well as os.DirFS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a fragment source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Fragment reads the named fragment file.
func (s *FSSource) Fragment(_ context.Context, name string) (string, error) {
	data, err := fs.ReadFile(s.fsys, path.Join(fragmentDir, name+".mjml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFragmentNotFound, name)
		}
		return "", errors.Join(ErrFragmentNotFound, err)
	}
	return string(data), nil
}
