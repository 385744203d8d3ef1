// Package storage guarda las imágenes de producto en disco local.
package storage

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// PublicPrefix ruta pública bajo la que se sirven los archivos.
const PublicPrefix = "/uploads"

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// Stored archivo guardado.
type Stored struct {
	Filename string
	URL      string
}

// LocalUploader escribe archivos en Dir con nombre único.
type LocalUploader struct {
	dir      string
	maxBytes int64
}

// NewLocalUploader crea el directorio si no existe.
func NewLocalUploader(dir string, maxBytes int64) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio: %w", err)
	}
	return &LocalUploader{dir: dir, maxBytes: maxBytes}, nil
}

// Dir directorio de almacenamiento.
func (u *LocalUploader) Dir() string { return u.dir }

// SaveImage valida extensión, tamaño y contenido (debe ser imagen) y guarda el archivo.
func (u *LocalUploader) SaveImage(originalName string, size int64, r io.Reader) (*Stored, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExt[ext] {
		return nil, fmt.Errorf("%w: solo se permiten imágenes (jpg, png, gif, webp)", domain.ErrInvalidInput)
	}
	if size > u.maxBytes {
		return nil, fmt.Errorf("%w: el archivo supera %d MB", domain.ErrInvalidInput, u.maxBytes>>20)
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("storage: leer archivo: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return nil, fmt.Errorf("%w: el contenido no es una imagen", domain.ErrInvalidInput)
	}

	name := uuid.NewString() + "-" + SanitizeFilename(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))) + ext
	path := filepath.Join(u.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage: crear archivo: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(br, u.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > u.maxBytes {
		err = fmt.Errorf("%w: el archivo supera %d MB", domain.ErrInvalidInput, u.maxBytes>>20)
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return &Stored{Filename: name, URL: PublicPrefix + "/" + name}, nil
}

// SanitizeFilename quita tildes y deja solo [a-z0-9_-]. "Foto Señal Ñu" -> "foto-senal-nu".
func SanitizeFilename(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > 60 {
		out = out[:60]
	}
	if out == "" {
		return "imagen"
	}
	return out
}
