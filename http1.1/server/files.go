package server

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

const octetStream = "application/octet-stream"

// Dir is the serving directory for /files/. The zero value disables file
// routes. Names are opened through os.Root, so nothing outside the directory
// can be read or created.
type Dir string

var errNoDirectory = errors.New("no serving directory configured")

func (d Dir) openRoot() (*os.Root, error) {
	if d == "" {
		return nil, errNoDirectory
	}
	return os.OpenRoot(string(d))
}

// readFile returns the contents of name inside d.
func (d Dir) readFile(name string) ([]byte, error) {
	root, err := d.openRoot()
	if err != nil {
		return nil, err
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, &os.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	return io.ReadAll(f)
}

// createFile writes data to a new file called name inside d. It fails if the
// file already exists.
func (d Dir) createFile(name string, data []byte) error {
	root, err := d.openRoot()
	if err != nil {
		return err
	}
	defer root.Close()

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d Dir) getFile(req *Request) *Response {
	name := strings.TrimPrefix(req.Target, filesPrefix)
	content, err := d.readFile(name)
	if err != nil {
		slog.Debug("file read failed", "name", name, "err", err)
		return NewResponse(StatusNotFound)
	}
	res := NewResponse(StatusOK)
	res.SetBody(octetStream, content)
	return res
}

func (d Dir) postFile(req *Request) *Response {
	name := strings.TrimPrefix(req.Target, filesPrefix)
	if err := d.createFile(name, req.Body); err != nil {
		slog.Debug("file create failed", "name", name, "err", err)
		return NewResponse(StatusBadRequest)
	}
	return NewResponse(StatusCreated)
}
