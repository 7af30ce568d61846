package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kvesta/mdyml/config"
)

// DefaultOutput selects a dated file under ./output.
const DefaultOutput = "output"

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// OutputFile resolves where a report goes. An empty name or "-" means
// stdout and yields "".
func OutputFile(outfile, ext string, now time.Time) (string, error) {
	switch outfile {
	case "", "-":
		return "", nil
	case DefaultOutput:
		pwd, _ := os.Getwd()
		outfile = filepath.Join(pwd, DefaultOutput, fmt.Sprintf("%s.%s", now.Format("2006-01-02"), ext))
	}

	folder := filepath.Dir(outfile)
	if !exists(folder) {
		if err := os.MkdirAll(folder, os.FileMode(0755)); err != nil {
			return "", err
		}
	}

	return outfile, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Create opens the resolved output, falling back to stdout.
func Create(outfile, ext string, stdout io.Writer) (io.WriteCloser, error) {
	filename, err := OutputFile(outfile, ext, time.Now())
	if err != nil {
		return nil, err
	}

	if filename == "" {
		return nopCloser{stdout}, nil
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	log.Infof("Output file is saved in: %s", config.Yellow(filename))
	return f, nil
}

// Emit runs write against w and closes it. A write error wins over the close
// error, and the close error is returned otherwise.
func Emit(w io.WriteCloser, write func(io.Writer) error) error {
	if err := write(w); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}
