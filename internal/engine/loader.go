package engine

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"salarydash/internal/models"
)

// Source column names of the salary CSV.
const (
	ColYear        = "ano"
	ColSeniority   = "senioridade"
	ColContract    = "contrato"
	ColCompanySize = "tamanho_empresa"
	ColTitle       = "cargo"
	ColSalaryUSD   = "usd"
	ColRemote      = "remoto"
	ColCountry     = "residencia_iso3"
)

// chunkRows is the number of CSV rows decoded per arrow record batch.
const chunkRows = 4096

var utf8BOM = []byte("\xef\xbb\xbf")

type sourceColumn struct {
	name     string
	typ      arrow.DataType
	nullable bool
}

var sourceColumns = []sourceColumn{
	{name: ColYear, typ: arrow.PrimitiveTypes.Int64},
	{name: ColSeniority, typ: arrow.BinaryTypes.String},
	{name: ColContract, typ: arrow.BinaryTypes.String},
	{name: ColCompanySize, typ: arrow.BinaryTypes.String},
	{name: ColTitle, typ: arrow.BinaryTypes.String},
	{name: ColSalaryUSD, typ: arrow.PrimitiveTypes.Float64},
	{name: ColRemote, typ: arrow.BinaryTypes.String},
	{name: ColCountry, typ: arrow.BinaryTypes.String, nullable: true},
}

// Loader fetches the salary CSV and decodes it into a ColumnStore.
type Loader struct {
	client *http.Client
	logger *zap.Logger
}

func NewLoader(client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, logger: logger}
}

// Load reads source (http(s) URL, file URL or local path) and parses it.
// Every failure is reported as a *LoadError.
func (l *Loader) Load(ctx context.Context, source string) (*ColumnStore, error) {
	start := time.Now()
	l.logger.Info("loading dataset", zap.String("source", source))

	body, err := l.fetch(ctx, source)
	if err != nil {
		return nil, &LoadError{Kind: LoadErrFetch, Source: source, Err: err}
	}

	store, err := Parse(source, body)
	if err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		zap.String("source", source),
		zap.Int("rows", store.Len()),
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)),
	)
	return store, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	path := source
	if err == nil && u.Scheme == "file" {
		path = u.Path
	}
	return os.ReadFile(path)
}

// Parse decodes CSV content into a ColumnStore. Columns other than the
// required ones are read as strings and ignored.
func Parse(source string, body []byte) (*ColumnStore, error) {
	body = bytes.TrimPrefix(body, utf8BOM)

	header, err := readHeader(body)
	if err != nil {
		return nil, &LoadError{Kind: LoadErrSchema, Source: source, Err: err}
	}
	if err := checkHeader(header); err != nil {
		return nil, &LoadError{Kind: LoadErrSchema, Source: source, Err: err}
	}

	r := csv.NewReader(bytes.NewReader(body), sourceSchema(header),
		csv.WithHeader(true),
		csv.WithChunk(chunkRows),
		csv.WithNullReader(true, ""),
	)
	defer r.Release()

	// Exact allocation: one row per line, minus the header.
	b := newStoreBuilder(max(bytes.Count(body, []byte{'\n'})-1, 0))
	rows := 0
	for r.Next() {
		// A batch may be handed out alongside a conversion error.
		if err := r.Err(); err != nil {
			return nil, &LoadError{Kind: LoadErrParse, Source: source, Err: err}
		}
		rec := r.Record()
		if err := b.addBatch(rec, rows); err != nil {
			if le, ok := err.(*LoadError); ok {
				le.Source = source
			}
			return nil, err
		}
		rows += int(rec.NumRows())
	}
	if err := r.Err(); err != nil {
		return nil, &LoadError{Kind: LoadErrParse, Source: source, Err: err}
	}

	store := b.build()
	store.Fingerprint = xxh3.Hash(body)
	return store, nil
}

// readHeader returns the column names of the first CSV record; empty input has none.
func readHeader(body []byte) ([]string, error) {
	header, err := stdcsv.NewReader(bytes.NewReader(body)).Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return header, err
}

// checkHeader verifies that header names every required column.
func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, c := range sourceColumns {
		if !present[c.name] {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// sourceSchema types every header column: required columns get their fixed
// type, the rest are read as strings. Rows must match the header width.
func sourceSchema(header []string) *arrow.Schema {
	types := make(map[string]arrow.DataType, len(sourceColumns))
	for _, c := range sourceColumns {
		types[c.name] = c.typ
	}

	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		typ, ok := types[name]
		if !ok {
			typ = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: name, Type: typ, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

type batchColumns struct {
	year   *array.Int64
	salary *array.Float64

	seniority, contract, size, title, remote, country *array.String

	required []namedArray
}

type namedArray struct {
	name string
	arr  arrow.Array
}

func bindColumns(rec arrow.Record) (*batchColumns, error) {
	arrays := make(map[string]arrow.Array, len(sourceColumns))
	for _, c := range sourceColumns {
		idx := rec.Schema().FieldIndices(c.name)
		if len(idx) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c.name)
		}
		arr := rec.Column(idx[0])
		if !arrow.TypeEqual(arr.DataType(), c.typ) {
			return nil, fmt.Errorf("column %s: expected %s, got %s", c.name, c.typ, arr.DataType())
		}
		arrays[c.name] = arr
	}

	cols := &batchColumns{
		year:      arrays[ColYear].(*array.Int64),
		salary:    arrays[ColSalaryUSD].(*array.Float64),
		seniority: arrays[ColSeniority].(*array.String),
		contract:  arrays[ColContract].(*array.String),
		size:      arrays[ColCompanySize].(*array.String),
		title:     arrays[ColTitle].(*array.String),
		remote:    arrays[ColRemote].(*array.String),
		country:   arrays[ColCountry].(*array.String),
	}
	for _, c := range sourceColumns {
		if !c.nullable {
			cols.required = append(cols.required, namedArray{name: c.name, arr: arrays[c.name]})
		}
	}
	return cols, nil
}

// addBatch appends one arrow record batch; firstRow is the number of rows already read.
func (b *storeBuilder) addBatch(rec arrow.Record, firstRow int) error {
	cols, err := bindColumns(rec)
	if err != nil {
		return &LoadError{Kind: LoadErrSchema, Err: err}
	}

	n := int(rec.NumRows())
	for i := 0; i < n; i++ {
		for _, col := range cols.required {
			if col.arr.IsNull(i) {
				return &LoadError{
					Kind: LoadErrParse,
					Row:  firstRow + i + 1,
					Err:  fmt.Errorf("%w: %s", ErrNullValue, col.name),
				}
			}
		}

		r := models.Record{
			Year:        int(cols.year.Value(i)),
			Seniority:   cols.seniority.Value(i),
			Contract:    cols.contract.Value(i),
			CompanySize: cols.size.Value(i),
			Title:       cols.title.Value(i),
			SalaryUSD:   cols.salary.Value(i),
			RemoteMode:  cols.remote.Value(i),
		}
		if !cols.country.IsNull(i) {
			r.Country = cols.country.Value(i)
		}
		b.add(r)
	}
	return nil
}
