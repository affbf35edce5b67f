// Package blob stores scan images as individual files in a flat directory.
//
// Blobs are named with a random UUID and a .jpg extension. A blob is owned by
// exactly one scan record; removing the record removes the blob.
package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// Extension is appended to every generated blob name.
const Extension = ".jpg"

// Dir is a directory of image blobs.
type Dir struct {
	root  string
	newID func() string
}

// NewDir creates the blob directory if needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &Dir{root: root, newID: uuid.NewString}, nil
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.root
}

// Path returns the location of the blob named ref. Names that would leave the
// directory are rejected with domain.ErrInvalidInput.
func (d *Dir) Path(ref string) (string, error) {
	if err := validRef(ref); err != nil {
		return "", err
	}
	return d.path(ref), nil
}

func (d *Dir) path(ref string) string {
	return filepath.Join(d.root, ref)
}

// Save writes data under a freshly generated name and returns the name.
func (d *Dir) Save(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	ref := d.newID() + Extension
	if err := os.WriteFile(d.path(ref), data, 0600); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrBlobWrite, ref, err)
	}
	return ref, nil
}

// Load reads the blob named ref.
func (d *Dir) Load(ref string) ([]byte, error) {
	if err := validRef(ref); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.path(ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("image %s: %w", ref, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", ref, err)
	}
	return data, nil
}

// Remove deletes the blob named ref. A blob that is already gone is not an error.
func (d *Dir) Remove(ref string) error {
	if err := validRef(ref); err != nil {
		return err
	}

	err := os.Remove(d.path(ref))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing image %s: %w", ref, err)
	}
	return nil
}

// validRef rejects names that would escape the blob directory.
func validRef(ref string) error {
	if ref == "" || ref == "." || ref == ".." || strings.ContainsAny(ref, `/\`) {
		return fmt.Errorf("%w: image reference %q", domain.ErrInvalidInput, ref)
	}
	return nil
}
