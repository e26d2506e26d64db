package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// Tabular is implemented by values that render as one or more tables.
type Tabular interface {
	Tables() []*Table
}

// TableFormatter formats data as aligned text tables.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats data as a table.
// Supports: Tabular, *Table, structs (field/value) and maps (key/value).
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case Tabular:
		for i, t := range d.Tables() {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := t.RenderWithOptions(w, f.NoHeaders); err != nil {
				return err
			}
		}
		return nil
	case *Table:
		return d.RenderWithOptions(w, f.NoHeaders)
	}

	t, err := toTable(data)
	if err != nil {
		return (&JSONFormatter{}).Format(w, data)
	}
	return t.RenderWithOptions(w, f.NoHeaders)
}

func toTable(data any) (*Table, error) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		t := NewTable("", "KEY", "VALUE")
		iter := v.MapRange()
		for iter.Next() {
			t.AddRow(FormatValue(iter.Key().Interface()), FormatValue(iter.Value().Interface()))
		}
		sort.Slice(t.Rows, func(i, j int) bool { return t.Rows[i][0] < t.Rows[j][0] })
		return t, nil
	case reflect.Struct:
		t := NewTable("", "FIELD", "VALUE")
		typ := v.Type()
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := fieldName(field)
			if name == "-" {
				continue
			}
			t.AddRow(name, FormatValue(v.Field(i).Interface()))
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	}
}

func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return f.Name
}

// FormatValue formats a scalar for a table cell. Empty values render as "-".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return x
	case time.Duration:
		return x.Round(time.Millisecond).String()
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return x.Format(time.RFC3339)
	case float32, float64:
		return fmt.Sprintf("%.2f", x)
	case []string:
		if len(x) == 0 {
			return "-"
		}
		return strings.Join(x, ", ")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", rv.Len())
	case reflect.Map:
		if rv.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", rv.Len())
	}
	return fmt.Sprintf("%v", v)
}

// Table is a titled grid of cells rendered with aligned columns.
type Table struct {
	// Title, when set, is printed above the headers as "== Title ==".
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable returns an empty table with the given headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table. noHeaders suppresses the title
// and header row so the output can be piped to line tools.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	if !noHeaders && t.Title != "" {
		if _, err := fmt.Fprintf(w, "== %s ==\n", t.Title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
