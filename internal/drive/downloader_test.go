package drive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSource struct {
	files    []*File
	contents map[string][]byte
	exported map[string]string
}

func (f *fakeSource) ListFiles(ctx context.Context, folderID string) ([]*File, error) {
	return f.files, nil
}

func (f *fakeSource) DownloadFile(ctx context.Context, fileID string, w io.Writer) error {
	data, ok := f.contents[fileID]
	if !ok {
		return errors.New("not found")
	}
	_, err := w.Write(data)
	return err
}

func (f *fakeSource) ExportCSV(ctx context.Context, fileID string, w io.Writer) error {
	_, err := io.WriteString(w, f.exported[fileID])
	return err
}

func xlsxBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestDownloadInputs(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{
		files: []*File{
			{ID: "1", Name: "sales.csv"},
			{ID: "2", Name: "inventory.xlsx"},
			{ID: "3", Name: "partners", MimeType: spreadsheetMimeType},
			{ID: "4", Name: "holiday.jpg"},
		},
		contents: map[string][]byte{
			"1": []byte("Día,Nombre del producto,Artículos netos vendidos\n"),
			"2": xlsxBytes(t, [][]interface{}{
				{"Día", "Nombre del producto", "Unidades de inventario finales", "Valor final del inventario"},
				{"2024-03-02", "Tundra", "28"},
			}),
		},
		exported: map[string]string{"3": "Name,Type\nPerfumes SA,Supplier\n"},
	}
	targets := map[string]string{
		"sales":     filepath.Join(dir, "sales.csv"),
		"inventory": filepath.Join(dir, "inventory.csv"),
		"partners":  filepath.Join(dir, "partners.csv"),
	}
	resolve := func(name string) (string, bool) {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		p, ok := targets[stem]
		return p, ok
	}

	d := &Downloader{source: src}
	paths, err := d.DownloadInputs(context.Background(), "folder", resolve)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	inv, err := os.ReadFile(targets["inventory"])
	require.NoError(t, err)
	assert.Equal(t, "Día,Nombre del producto,Unidades de inventario finales,Valor final del inventario\n2024-03-02,Tundra,28,\n", string(inv))

	partners, err := os.ReadFile(targets["partners"])
	require.NoError(t, err)
	assert.Contains(t, string(partners), "Perfumes SA")

	_, err = os.Stat(targets["inventory"] + ".download.xlsx")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadInputsFailure(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{files: []*File{{ID: "missing", Name: "sales.csv"}}}
	d := &Downloader{source: src}

	_, err := d.DownloadInputs(context.Background(), "", func(name string) (string, bool) {
		return filepath.Join(dir, name), true
	})
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "sales.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewServiceRequiresCredentials(t *testing.T) {
	_, err := NewService(context.Background(), "")
	assert.Error(t, err)
	_, err = NewService(context.Background(), "{not json")
	assert.Error(t, err)
}
