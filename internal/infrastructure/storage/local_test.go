package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// pngHeader firma mínima reconocida como image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "foto-senal-nu", SanitizeFilename("Foto Señal Ñu"))
	assert.Equal(t, "cafe_2024", SanitizeFilename("  café_2024!! "))
	assert.Equal(t, "imagen", SanitizeFilename("¿¿??"))
}

func TestSaveImage_Guarda(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(dir, 1<<20)
	require.NoError(t, err)

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 100)...)
	out, err := u.SaveImage("Taladro Percutor.PNG", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out.Filename, "-taladro-percutor.png"))
	assert.Equal(t, "/uploads/"+out.Filename, out.URL)
	saved, err := os.ReadFile(filepath.Join(dir, out.Filename))
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestSaveImage_Rechazos(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir(), 64)
	require.NoError(t, err)

	_, err = u.SaveImage("doc.pdf", 10, bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "extensión no permitida")

	_, err = u.SaveImage("falsa.png", 10, strings.NewReader("texto plano que no es imagen"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "contenido no es imagen")

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 100)...)
	_, err = u.SaveImage("grande.png", int64(len(big)), bytes.NewReader(big))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "supera el tamaño")
}
