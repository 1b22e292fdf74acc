package filesystem

import (
	"io"
	"os"
)

// GacheFs lets gache persist its entries through the swappable backend,
// so a MemMapFs in tests also captures the remembered stream location.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
