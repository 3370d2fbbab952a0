package parquetio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/parquet-go/parquet-go"
)

func columnNode(t domain.DataType) parquet.Node {
	switch t {
	case domain.DataTypeDouble:
		return parquet.Optional(parquet.Leaf(parquet.DoubleType))
	case domain.DataTypeInteger:
		return parquet.Optional(parquet.Int(64))
	default:
		return parquet.Optional(parquet.String())
	}
}

func columnValue(v any) (parquet.Value, error) {
	switch x := v.(type) {
	case nil:
		return parquet.NullValue(), nil
	case string:
		return parquet.ByteArrayValue([]byte(x)), nil
	case float64:
		return parquet.DoubleValue(x), nil
	case int64:
		return parquet.Int64Value(x), nil
	default:
		return parquet.Value{}, fmt.Errorf("unsupported cell type %T", v)
	}
}

// EncodeDataset writes an imported dataset. Every column is optional so null
// cells survive the round trip.
func EncodeDataset(ds *domain.Dataset) ([]byte, error) {
	group := parquet.Group{}
	for _, c := range ds.Columns {
		if _, dup := group[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q in dataset", c.Name)
		}
		group[c.Name] = columnNode(c.Type)
	}
	schema := parquet.NewSchema("dataset", group)

	leaves := make([]int, len(ds.Columns))
	for i, c := range ds.Columns {
		leaf, ok := schema.Lookup(c.Name)
		if !ok {
			return nil, fmt.Errorf("column %q missing from parquet schema", c.Name)
		}
		leaves[i] = leaf.ColumnIndex
	}

	rows := make([]parquet.Row, ds.Len())
	for r := range rows {
		row := make(parquet.Row, len(ds.Columns))
		for i, c := range ds.Columns {
			if r >= len(c.Values) {
				return nil, fmt.Errorf("column %q has %d values, want %d", c.Name, len(c.Values), len(rows))
			}
			v, err := columnValue(c.Values[r])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", c.Name, r, err)
			}
			definition := 1
			if v.IsNull() {
				definition = 0
			}
			row[leaves[i]] = v.Level(0, definition, leaves[i])
		}
		rows[r] = row
	}

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, schema)
	if _, err := w.WriteRows(rows); err != nil {
		return nil, fmt.Errorf("failed to write dataset rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish dataset file: %w", err)
	}
	return buf.Bytes(), nil
}

func dataTypeOf(n parquet.Node) domain.DataType {
	switch n.Type().Kind() {
	case parquet.Float, parquet.Double:
		return domain.DataTypeDouble
	case parquet.Int32, parquet.Int64:
		return domain.DataTypeInteger
	default:
		return domain.DataTypeText
	}
}

func cellOf(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	default:
		return string(v.ByteArray())
	}
}

// DecodeDataset reads any flat parquet file, such as an imported upload or a
// stored summary. Integer columns decode as int64, floating point columns as
// float64 and everything else as text.
func DecodeDataset(data []byte) (*domain.Dataset, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	schema := f.Schema()
	paths := schema.Columns()
	ds := &domain.Dataset{Columns: make([]domain.Column, len(paths))}
	for i, p := range paths {
		leaf, ok := schema.Lookup(p...)
		if !ok || len(p) != 1 {
			return nil, fmt.Errorf("dataset column %q is not a flat column", strings.Join(p, "."))
		}
		ds.Columns[i] = domain.Column{Name: p[0], Type: dataTypeOf(leaf.Node), Values: make([]any, 0, f.NumRows())}
	}

	r := parquet.NewReader(f)
	defer r.Close()
	buf := make([]parquet.Row, 128)
	for {
		n, err := r.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]any, len(paths))
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(cells) {
					cells[c] = cellOf(v)
				}
			}
			for c := range cells {
				ds.Columns[c].Values = append(ds.Columns[c].Values, cells[c])
			}
		}
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset rows: %w", err)
		}
	}
	return ds, nil
}
