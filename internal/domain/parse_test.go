package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
	"github.com/couchcryptid/aurora-forecast-etl/internal/mockdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testValidAt = time.Date(2021, time.March, 15, 4, 30, 0, 0, time.UTC)

func TestParseForecast(t *testing.T) {
	t.Run("standard payload", func(t *testing.T) {
		raw := mockdata.Standard(testValidAt).String()

		f, err := domain.ParseForecast(raw)
		require.NoError(t, err)

		rows, cols := f.Grid.Dims()
		assert.Equal(t, domain.GridRows, rows)
		assert.Equal(t, domain.GridCols, cols)
		assert.Equal(t, testValidAt, f.ValidAt)
		assert.Equal(t, mockdata.Oval(0, 0), f.Grid.At(0, 0))
		assert.Equal(t, mockdata.Oval(450, 512), f.Grid.At(450, 512))
	})

	t.Run("free text before timestamp", func(t *testing.T) {
		p := mockdata.Standard(testValidAt)
		p.ValidAtLine = "# Product Valid At: dummy text    2021-03-15 04:30"

		f, err := domain.ParseForecast(p.String())
		require.NoError(t, err)
		assert.Equal(t, testValidAt, f.ValidAt)
	})

	t.Run("last valid-at line wins", func(t *testing.T) {
		raw := "# Product Valid At: 2020-01-01 00:00\n" + mockdata.Standard(testValidAt).String()

		f, err := domain.ParseForecast(raw)
		require.NoError(t, err)
		assert.Equal(t, testValidAt, f.ValidAt)
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		raw := strings.ReplaceAll(mockdata.Standard(testValidAt).String(), "\n", "\r\n")

		f, err := domain.ParseForecast(raw)
		require.NoError(t, err)
		assert.Equal(t, testValidAt, f.ValidAt)
	})
}

func TestParseForecast_ShapeValidation(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"one row short", domain.GridRows - 1, domain.GridCols},
		{"one column short", domain.GridRows, domain.GridCols - 1},
		{"transposed", domain.GridCols, domain.GridRows},
		{"empty body", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mockdata.Standard(testValidAt)
			p.Rows, p.Cols = tt.rows, tt.cols

			f, err := domain.ParseForecast(p.String())
			require.Error(t, err)
			assert.Nil(t, f.Grid)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Reason, "shape")
			assert.True(t, domain.IsAcquisitionError(err))
		})
	}
}

func TestParseForecast_TimestampValidation(t *testing.T) {
	t.Run("year before 2000", func(t *testing.T) {
		p := mockdata.Standard(time.Date(1999, time.December, 31, 23, 59, 0, 0, time.UTC))

		_, err := domain.ParseForecast(p.String())
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Reason, "1999")
	})

	t.Run("year 3000 is not a 20xx year", func(t *testing.T) {
		p := mockdata.Standard(time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC))

		_, err := domain.ParseForecast(p.String())
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("missing header", func(t *testing.T) {
		p := mockdata.Standard(testValidAt)
		p.ValidAtLine = "# Product Issued: 2021-03-15 04:30"

		_, err := domain.ParseForecast(p.String())
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Reason, "Valid At")
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		p := mockdata.Standard(testValidAt)
		p.ValidAtLine = "# Product Valid At: not-a-date-at-all"

		_, err := domain.ParseForecast(p.String())
		var pe *domain.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 2, pe.Line)
	})
}

func TestParseForecast_MalformedBody(t *testing.T) {
	t.Run("html error page", func(t *testing.T) {
		raw := "<html>\n<head><title>503 Service Unavailable</title></head>\n</html>\n"

		_, err := domain.ParseForecast(raw)
		var pe *domain.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 1, pe.Line)
		assert.True(t, domain.IsAcquisitionError(err))
	})

	t.Run("ragged row", func(t *testing.T) {
		raw := "# Product Valid At: 2021-03-15 04:30\n1 2 3\n4 5\n"

		_, err := domain.ParseForecast(raw)
		var pe *domain.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 3, pe.Line)
		assert.Contains(t, pe.Error(), "expected 3 fields")
	})

	t.Run("trailing comment on data line", func(t *testing.T) {
		p := mockdata.Standard(testValidAt)
		raw := strings.TrimSuffix(p.String(), "\n") + "  # trailing note\n"

		_, err := domain.ParseForecast(raw)
		assert.NoError(t, err)
	})
}

func TestParseForecast_ErrorsAreDistinct(t *testing.T) {
	_, err := domain.ParseForecast("")
	require.Error(t, err)

	var pe *domain.ParseError
	assert.False(t, errors.As(err, &pe), "empty payload is a shape failure, not a parse failure")
}
