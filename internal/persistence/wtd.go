package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// FileName is the append-only log kept under the data directory.
const FileName = "playbook.aof"

// ErrCorruptLog is returned when the log ends in a partial or undecodable record.
var ErrCorruptLog = errors.New("corrupt append-only log")

// CorruptLogError reports where the damaged part of the log starts. Offset is
// the size of the log up to the end of the last good record.
type CorruptLogError struct {
	Record int
	Offset int64
	Err    error
}

func (e *CorruptLogError) Error() string {
	return fmt.Sprintf("%v: record %d at offset %d: %v", ErrCorruptLog, e.Record, e.Offset, e.Err)
}

func (e *CorruptLogError) Is(target error) bool { return target == ErrCorruptLog }

func (e *CorruptLogError) Unwrap() error { return e.Err }

// countingReader tracks how many bytes the decoder has consumed.
type countingReader struct {
	r *bufio.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

func (c *countingReader) UnreadByte() error {
	err := c.r.UnreadByte()
	if err == nil {
		c.n--
	}
	return err
}

// Persistence appends write requests to disk as a stream of msgpack maps.
type Persistence struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// NewPersistence opens (or creates) the log inside dataDir.
func NewPersistence(dataDir string) (*Persistence, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return Open(filepath.Join(dataDir, FileName))
}

// Open opens the log at path in append mode, creating it if needed.
func Open(path string) (*Persistence, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Persistence{path: path, file: file}, nil
}

// Path returns the location of the log file.
func (p *Persistence) Path() string {
	return p.path
}

// LogRequest writes a request into the disk. Each request lands in one write
// so a crash can only cut off the last record.
func (p *Persistence) LogRequest(req map[string]interface{}) error {
	data, err := msgpack.Marshal(req)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return os.ErrClosed
	}
	_, err = p.file.Write(data)
	return err
}

// LoadRequests reads the log from the start. If the tail is damaged the
// requests decoded before it are returned together with a *CorruptLogError.
func (p *Persistence) LoadRequests() ([]map[string]interface{}, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var requests []map[string]interface{}
	buffered := bufio.NewReader(file)
	reader := &countingReader{r: buffered}
	decoder := msgpack.NewDecoder(reader)
	for {
		good := reader.n
		// EOF between records is a clean end; inside a record it is damage.
		if _, err := buffered.Peek(1); errors.Is(err, io.EOF) {
			return requests, nil
		}
		var req map[string]interface{}
		if err := decoder.Decode(&req); err != nil {
			return requests, &CorruptLogError{Record: len(requests) + 1, Offset: good, Err: err}
		}
		if req == nil {
			return requests, &CorruptLogError{Record: len(requests) + 1, Offset: good, Err: errors.New("record is not a map")}
		}
		requests = append(requests, req)
	}
}

// RepairTail cuts a damaged tail reported by LoadRequests off the log, so new
// records are not appended behind unreadable bytes. It reports whether the
// file was truncated; errors other than a *CorruptLogError are ignored.
func (p *Persistence) RepairTail(loadErr error) (bool, error) {
	var corrupt *CorruptLogError
	if !errors.As(loadErr, &corrupt) {
		return false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return false, os.ErrClosed
	}
	if err := p.file.Truncate(corrupt.Offset); err != nil {
		return false, err
	}
	return true, p.file.Sync()
}

// Close closes the persistence file.
func (p *Persistence) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}
