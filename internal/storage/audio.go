package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// TempAudio is an uploaded recording kept on disk for the length of one request
type TempAudio struct {
	ID       string
	Path     string
	Filename string
	Size     int64

	once       sync.Once
	releaseErr error
}

// SaveAudio saves an uploaded audio file under dir
func SaveAudio(dir string, file *multipart.FileHeader) (*TempAudio, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	id := uuid.NewString()
	dst := filepath.Join(dir, id+"_"+filepath.Base(file.Filename))

	if err := saveMultipartFile(file, dst); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	var size int64
	if info, err := os.Stat(dst); err == nil {
		size = info.Size()
	}

	return &TempAudio{
		ID:       id,
		Path:     dst,
		Filename: file.Filename,
		Size:     size,
	}, nil
}

// Open opens the stored audio for reading
func (a *TempAudio) Open() (io.ReadCloser, error) {
	return os.Open(a.Path)
}

// Release deletes the stored file. Only the first call touches the disk.
func (a *TempAudio) Release() error {
	a.once.Do(func() {
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			a.releaseErr = fmt.Errorf("failed to remove %s: %w", a.Path, err)
		}
	})
	return a.releaseErr
}

/* helper */
func saveMultipartFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}
