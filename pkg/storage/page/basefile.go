package page

import (
	"fmt"
	"os"
	"sync"

	"heapdb/pkg/primitives"
)

// BaseFile provides the page-granular file I/O shared by all database file
// types: exact-size page reads and writes, page counting, and atomic page
// allocation. The file id is the stable hash of the absolute path.
type BaseFile struct {
	file     *os.File
	fileID   primitives.TableID
	filePath primitives.Filepath
	mutex    sync.RWMutex
}

// NewBaseFile opens (creating if necessary) the backing file. The path is
// resolved to its absolute form before hashing so the id is identical
// across process runs for the same file.
func NewBaseFile(filePath primitives.Filepath) (*BaseFile, error) {
	if filePath.IsEmpty() {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	absPath, err := filePath.Abs()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", filePath, err)
	}

	file, err := os.OpenFile(absPath.String(), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &BaseFile{
		file:     file,
		fileID:   absPath.Hash(),
		filePath: absPath,
	}, nil
}

func (bf *BaseFile) GetID() primitives.TableID {
	return bf.fileID
}

func (bf *BaseFile) Path() primitives.Filepath {
	return bf.filePath
}

// NumPages returns the number of whole pages in the file. A trailing
// partial page is not counted; holes are not supported, so page i always
// lives at byte offset i*PageSize().
func (bf *BaseFile) NumPages() (int, error) {
	bf.mutex.RLock()
	defer bf.mutex.RUnlock()

	if bf.file == nil {
		return 0, fmt.Errorf("file is closed")
	}

	fileInfo, err := bf.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}

	return int(fileInfo.Size() / int64(PageSize())), nil
}

// ReadPageData reads the raw image of the given page. A read that cannot
// deliver a full page is an error.
func (bf *BaseFile) ReadPageData(pageNo int) ([]byte, error) {
	bf.mutex.RLock()
	defer bf.mutex.RUnlock()

	if bf.file == nil {
		return nil, fmt.Errorf("file is closed")
	}

	if pageNo < 0 {
		return nil, fmt.Errorf("page number %d out of range", pageNo)
	}

	offset := int64(pageNo) * int64(PageSize())
	pageData := make([]byte, PageSize())

	if _, err := bf.file.ReadAt(pageData, offset); err != nil {
		return nil, fmt.Errorf("failed to read page %d at offset %d: %w", pageNo, offset, err)
	}

	return pageData, nil
}

// WritePageData writes a raw page image at the given page number and syncs
// the file. Writing at pageNo == NumPages extends the file by one page.
func (bf *BaseFile) WritePageData(pageNo int, pageData []byte) error {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	return bf.writePageDataLocked(pageNo, pageData)
}

func (bf *BaseFile) writePageDataLocked(pageNo int, pageData []byte) error {
	if bf.file == nil {
		return fmt.Errorf("file is closed")
	}

	if pageNo < 0 {
		return fmt.Errorf("page number %d out of range", pageNo)
	}

	if len(pageData) != PageSize() {
		return fmt.Errorf("invalid page data size: expected %d, got %d", PageSize(), len(pageData))
	}

	offset := int64(pageNo) * int64(PageSize())

	if _, err := bf.file.WriteAt(pageData, offset); err != nil {
		return fmt.Errorf("failed to write page %d: %w", pageNo, err)
	}

	if err := bf.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	return nil
}

// AllocateNewPage atomically extends the file by one zero-filled page and
// returns the allocated page number. Holding the write lock for the whole
// operation serializes concurrent appends.
func (bf *BaseFile) AllocateNewPage() (int, error) {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	if bf.file == nil {
		return 0, fmt.Errorf("file is closed")
	}

	fileInfo, err := bf.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}

	pageNo := int(fileInfo.Size() / int64(PageSize()))
	if err := bf.writePageDataLocked(pageNo, make([]byte, PageSize())); err != nil {
		return 0, err
	}

	return pageNo, nil
}

// Close releases the underlying file handle. Safe to call more than once.
func (bf *BaseFile) Close() error {
	bf.mutex.Lock()
	defer bf.mutex.Unlock()

	if bf.file != nil {
		err := bf.file.Close()
		bf.file = nil
		return err
	}

	return nil
}
