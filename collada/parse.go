package collada

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// OpenFunc opens a file referenced by a document, relative to it.
type OpenFunc func(name string) (io.ReadCloser, error)

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset: %s", label)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

func Parse(r io.Reader) (*Document, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	var doc Document
	if err := d.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads .dae, .dae.gz, .dae.zst and .zae files.
func Load(path string) (*Document, error) {
	doc, _, closer, err := load(path)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		closer.Close()
	}
	return doc, nil
}

func load(name string) (*Document, OpenFunc, io.Closer, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".zae") {
		return loadArchive(name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(lower, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, nil, err
		}
		defer gzr.Close()
		r = gzr
	case strings.HasSuffix(lower, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, nil, err
		}
		defer zr.Close()
		r = zr
	}

	doc, err := Parse(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	dir := filepath.Dir(name)
	open := func(ref string) (io.ReadCloser, error) {
		if filepath.IsAbs(ref) {
			return os.Open(ref)
		}
		return os.Open(filepath.Join(dir, filepath.FromSlash(ref)))
	}
	return doc, open, nil, nil
}

type manifest struct {
	DaeRoot string `xml:"dae_root"`
}

// loadArchive reads a zipped COLLADA archive. The root document is named
// by manifest.xml, or is the first .dae entry.
func loadArchive(name string) (*Document, OpenFunc, io.Closer, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, nil, nil, err
	}
	files := map[string]*zip.File{}
	for _, f := range zr.File {
		files[path.Clean(f.Name)] = f
	}

	root := ""
	if mf, ok := files["manifest.xml"]; ok {
		r, err := mf.Open()
		if err == nil {
			var m manifest
			if xml.NewDecoder(r).Decode(&m) == nil {
				root = path.Clean(strings.TrimSpace(m.DaeRoot))
			}
			r.Close()
		}
	}
	if _, ok := files[root]; !ok {
		root = ""
		for _, f := range zr.File {
			if strings.ToLower(path.Ext(f.Name)) == ".dae" {
				root = path.Clean(f.Name)
				break
			}
		}
	}
	if root == "" {
		zr.Close()
		return nil, nil, nil, fmt.Errorf("%s: no .dae document in archive", name)
	}

	r, err := files[root].Open()
	if err != nil {
		zr.Close()
		return nil, nil, nil, err
	}
	doc, err := Parse(r)
	r.Close()
	if err != nil {
		zr.Close()
		return nil, nil, nil, fmt.Errorf("%s/%s: %w", name, root, err)
	}

	dir := path.Dir(root)
	open := func(ref string) (io.ReadCloser, error) {
		f, ok := files[path.Join(dir, ref)]
		if !ok {
			return nil, fmt.Errorf("%s: %w", ref, os.ErrNotExist)
		}
		return f.Open()
	}
	return doc, open, zr, nil
}
