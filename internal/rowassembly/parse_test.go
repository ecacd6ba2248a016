package rowassembly

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow_HeaderAndValues(t *testing.T) {
	row, err := NewParser().ParseRow(strings.NewReader("Temp,Pressure,pH\n20.5,2.5,7\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, row.Line())
	assert.Equal(t, []string{"Temp", "Pressure", "pH"}, row.Names())
	v, ok := row.Get("pH")
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestParseRow_ColumnCountMismatch(t *testing.T) {
	_, err := NewParser().ParseRow(strings.NewReader("A,B,C\n1,2\n"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.ErrorIs(t, err, ErrColumnCount)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseRow_NotNumeric(t *testing.T) {
	_, err := NewParser().ParseRow(strings.NewReader("A,B\n1,abc\n"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "B", pe.Field)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestParseRow_EmptyCellLeavesFieldOut(t *testing.T) {
	row, err := NewParser().ParseRow(strings.NewReader("A,B,C\n1,,3\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, row.Len())
	_, ok := row.Get("B")
	assert.False(t, ok)

	v := Assemble([]Slot{{1, "A"}, {2, "B"}, {3, "C"}}, row)
	assert.True(t, v.IsMissing(2))
}

func TestParseRow_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		err   error
		line  int
	}{
		{"Empty", "", ErrEmptyInput, 0},
		{"BlankOnly", "\n\n", ErrEmptyInput, 0},
		{"HeaderOnly", "A,B\n", ErrNoValues, 1},
		{"TwoRows", "A\n1\n2\n", ErrTooManyRows, 3},
		{"DuplicateField", "A,A\n1,2\n", ErrDuplicateField, 1},
		{"EmptyFieldName", "A,,C\n1,2,3\n", ErrEmptyFieldName, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParser().ParseRow(strings.NewReader(tc.input))
			require.ErrorIs(t, err, tc.err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestParseRows_LineNumbersAndBlankLines(t *testing.T) {
	input := "A,B\r\n1,2\r\n\r\n3,4\r\n"
	rows, err := NewParser().ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line())
	assert.Equal(t, 4, rows[1].Line())
	v, _ := rows[1].Get("B")
	assert.Equal(t, 4.0, v)
}

func TestParseRows_ErrorOnLaterLine(t *testing.T) {
	_, err := NewParser().ParseRows(strings.NewReader("A,B\n1,2\n3\n"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
}

func TestParser_DelimiterAndMatchingOptions(t *testing.T) {
	p := NewParser(WithDelimiter(';'), WithTrimSpace(), WithCaseInsensitive())
	row, err := p.ParseRow(strings.NewReader(" TEMP ; Pressure\n 1.5 ; 2\n"))
	require.NoError(t, err)

	v := Assemble([]Slot{{1, "temp"}, {2, "pressure"}}, row)
	assert.Equal(t, []float64{1.5, 2}, v.Values())
}

func TestParser_TrimmedNamesCollide(t *testing.T) {
	_, err := NewParser(WithTrimSpace()).ParseRow(strings.NewReader("A, A\n1,2\n"))
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestParseRows_LongHeader(t *testing.T) {
	const n = 8000
	names := make([]string, n)
	values := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Wavelength_%05d", i+1)
		values[i] = "0.125"
	}
	input := strings.Join(names, ",") + "\n" + strings.Join(values, ",") + "\n"
	require.Greater(t, len(input), 64*1024)

	row, err := NewParser().ParseRow(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, n, row.Len())
	v, ok := row.Get("Wavelength_08000")
	assert.True(t, ok)
	assert.Equal(t, 0.125, v)
}

func TestParseRow_ByteOrderMarkIgnored(t *testing.T) {
	row, err := NewParser().ParseRow(strings.NewReader("\ufeffTemp,pH\n25,7\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Temp", "pH"}, row.Names())

	v := Assemble([]Slot{{1, "Temp"}, {2, "pH"}}, row)
	assert.False(t, v.IsMissing(1))
	assert.Equal(t, 25.0, v.Value(1))
}

func TestParseRow_NonFiniteRejected(t *testing.T) {
	for _, cell := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		t.Run(cell, func(t *testing.T) {
			_, err := NewParser().ParseRow(strings.NewReader("A,B\n1," + cell + "\n"))

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 2, pe.Line)
			assert.Equal(t, "B", pe.Field)
			assert.ErrorIs(t, err, ErrNotNumeric)
		})
	}
}

func TestParseRows_SingleColumnEmptyCellIsBlank(t *testing.T) {
	rows, err := NewParser().ParseRows(strings.NewReader("A\n1\n\n3"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line())
	assert.Equal(t, 4, rows[1].Line())
}
