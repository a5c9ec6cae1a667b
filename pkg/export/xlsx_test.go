package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type row struct {
	Name  string
	Count int
}

var columns = []Column[row]{
	{Header: "Название", Width: 30, Value: func(r row) any { return r.Name }},
	{Header: "Количество", Value: func(r row) any { return r.Count }},
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, "Команды", columns, []row{{"Платформа", 3}, {"SOC", 2}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Команды"}, f.GetSheetList())

	rows, err := f.GetRows("Команды")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Название", "Количество"}, rows[0])
	assert.Equal(t, []string{"Платформа", "3"}, rows[1])
	assert.Equal(t, []string{"SOC", "2"}, rows[2])

	width, err := f.GetColWidth("Команды", "A")
	require.NoError(t, err)
	assert.InDelta(t, 30.0, width, 0.01)
}

func TestWriteXLSX_EmptyRowsKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Пусто", columns, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Пусто")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestWriteXLSX_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX[row](&buf, "Пусто", nil, nil)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
