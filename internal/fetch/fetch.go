// Package fetch downloads delivery datasets over HTTP. Compressed payloads
// (.gz, .bz2, .zst) are decompressed on the fly and .zip archives are unpacked
// to their delivery CSV.
package fetch

import (
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ErrStatus is returned when the server answers with a non-200 status.
var ErrStatus = errors.New("unexpected HTTP status")

// ErrNoCSV is returned when a downloaded archive holds no .csv entry.
var ErrNoCSV = errors.New("archive contains no csv file")

// archiveEntry is the Cricsheet "all-in-one" file inside its zip bundles.
const archiveEntry = "all_matches.csv"

// Client downloads dataset files.
type Client struct {
	http *http.Client
	log  *slog.Logger
}

// NewClient returns a client whose requests time out after timeout.
func NewClient(timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Download fetches rawURL into dir and returns the path of the resulting
// dataset file.
func (c *Client) Download(ctx context.Context, rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = "dataset.csv"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %w: %d", rawURL, ErrStatus, resp.StatusCode)
	}
	c.log.Debug("download started", "url", rawURL, "bytes", resp.ContentLength)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	ext := strings.ToLower(path.Ext(name))
	if ext == ".zip" {
		return c.unzip(resp.Body, dir)
	}

	var src io.Reader = resp.Body
	switch ext {
	case ".bz2":
		src = bzip2.NewReader(resp.Body)
		name = strings.TrimSuffix(name, path.Ext(name))
	case ".zst":
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
		name = strings.TrimSuffix(name, path.Ext(name))
	case ".gz":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
		name = strings.TrimSuffix(name, path.Ext(name))
	}

	outPath := filepath.Join(dir, name)
	n, err := writeFile(outPath, src)
	if err != nil {
		return "", err
	}
	c.log.Info("downloaded dataset", "path", outPath, "bytes", n)
	return outPath, nil
}

// unzip spools the archive to a temp file (zip needs random access) and
// extracts all_matches.csv, or the first .csv entry if that is absent.
func (c *Client) unzip(body io.Reader, dir string) (string, error) {
	tmp, err := os.CreateTemp(dir, "download-*.zip")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, body)
	if err != nil {
		return "", fmt.Errorf("spool archive: %w", err)
	}
	zr, err := zip.NewReader(tmp, size)
	if err != nil {
		return "", fmt.Errorf("zip: %w", err)
	}

	var pick *zip.File
	for _, f := range zr.File {
		base := path.Base(f.Name)
		if base == archiveEntry {
			pick = f
			break
		}
		if pick == nil && strings.EqualFold(path.Ext(base), ".csv") {
			pick = f
		}
	}
	if pick == nil {
		return "", ErrNoCSV
	}

	rc, err := pick.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", pick.Name, err)
	}
	defer rc.Close()

	outPath := filepath.Join(dir, path.Base(pick.Name))
	n, err := writeFile(outPath, rc)
	if err != nil {
		return "", err
	}
	c.log.Info("extracted dataset", "entry", pick.Name, "path", outPath, "bytes", n)
	return outPath, nil
}

func writeFile(outPath string, src io.Reader) (int64, error) {
	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return 0, fmt.Errorf("write: %w", err)
	}
	return n, nil
}
