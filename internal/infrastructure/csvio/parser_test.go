package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"First Name", "first_name"},
		{"first_name", "first_name"},
		{"  FIRST NAME  ", "first_name"},
		{"Reference No.", "reference_no"},
		{"Applied On", "applied_on"},
		{"e-mail", "e_mail"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.in), tt.in)
	}
}

func TestParser_ParseHeader(t *testing.T) {
	t.Run("normalizes exported header names", func(t *testing.T) {
		p, err := NewParser(strings.NewReader("Reference No.,First Name,Last Name,Email\n"))
		require.NoError(t, err)
		require.NoError(t, p.ParseHeader())

		assert.True(t, p.HasHeader("reference_no"))
		assert.True(t, p.HasHeader("first_name"))
		assert.Empty(t, p.MissingHeaders([]string{"first_name", "email"}))
		assert.Equal(t, []string{"last_name_x"}, p.MissingHeaders([]string{"last_name_x"}))
	})

	t.Run("strips a UTF-8 BOM", func(t *testing.T) {
		p, err := NewParser(strings.NewReader("\xEF\xBB\xBFfirst_name,email\nJane,j@example.com\n"))
		require.NoError(t, err)
		require.NoError(t, p.ParseHeader())
		assert.True(t, p.HasHeader("first_name"))
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := NewParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("non UTF-8 content", func(t *testing.T) {
		_, err := ParseBytes([]byte{0xFF, 0xFE, 0x41, 0x00})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestParser_ReadAllRows(t *testing.T) {
	csvData := "first_name,last_name,email\n" +
		"Jane, Wanjiku ,jane@example.com\n" +
		",,\n" +
		"Brian,Otieno,brian@example.com\n"

	p, err := NewParser(strings.NewReader(csvData))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	rows, err := p.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2, "fully empty rows are skipped")

	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, "Wanjiku", rows[0].Get("last_name"), "values are trimmed")
	assert.Equal(t, 4, rows[1].LineNumber)
	assert.Equal(t, "brian@example.com", rows[1].Get("email"))
}

func TestParser_ShortRow(t *testing.T) {
	p, err := NewParser(strings.NewReader("a,b,c\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	rows, err := p.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("c"), "missing trailing fields read as empty")
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(2)
	ec.AddRequired(2, "email")
	ec.AddFormat(3, "start_date", "YYYY-MM-DD", "31/12/2024")
	ec.Add(NewRowError(4, "", ErrCodeRowRejected, "rejected"))

	assert.Equal(t, 2, ec.Count())
	assert.Equal(t, 3, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
	assert.True(t, ec.HasErrors())
	assert.Contains(t, ec.Errors()[0].Error(), "column 'email'")
}
