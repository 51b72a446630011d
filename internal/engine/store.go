package engine

import (
	"strings"

	"salarydash/internal/models"
)

// NoCountry marks a row without a residence country.
const NoCountry int32 = -1

// ColumnStore holds the salary dataset in Struct-of-Arrays format.
// It is built once by the loader and never mutated afterwards.
type ColumnStore struct {
	// Data Columns (Flat Arrays)
	Years    []int32
	Salaries []float64

	// Dictionary Encoded IDs (0..N)
	SeniorityIDs []int32
	ContractIDs  []int32
	SizeIDs      []int32
	TitleIDs     []int32
	RemoteIDs    []int32
	CountryIDs   []int32 // NoCountry when absent

	// Dictionaries (ID -> String)
	SeniorityDict []string
	ContractDict  []string
	SizeDict      []string
	TitleDict     []string
	RemoteDict    []string
	CountryDict   []string

	// Fingerprint identifies the source content the store was built from.
	Fingerprint uint64
}

// Len returns the number of rows.
func (cs *ColumnStore) Len() int {
	return len(cs.Years)
}

// Record materializes row i.
func (cs *ColumnStore) Record(i int) models.Record {
	rec := models.Record{
		Year:        int(cs.Years[i]),
		Seniority:   cs.SeniorityDict[cs.SeniorityIDs[i]],
		Contract:    cs.ContractDict[cs.ContractIDs[i]],
		CompanySize: cs.SizeDict[cs.SizeIDs[i]],
		Title:       cs.TitleDict[cs.TitleIDs[i]],
		SalaryUSD:   cs.Salaries[i],
		RemoteMode:  cs.RemoteDict[cs.RemoteIDs[i]],
	}
	if id := cs.CountryIDs[i]; id != NoCountry {
		rec.Country = cs.CountryDict[id]
	}
	return rec
}

// dictionary assigns dense IDs to strings in first-seen order.
type dictionary struct {
	index  map[string]int32
	values []string
}

func newDictionary() *dictionary {
	return &dictionary{index: make(map[string]int32)}
}

func (d *dictionary) encode(s string) int32 {
	if id, ok := d.index[s]; ok {
		return id
	}
	id := int32(len(d.values))
	str := strings.Clone(s) // detach from the parser's buffers
	d.values = append(d.values, str)
	d.index[str] = id
	return id
}

// storeBuilder appends rows and encodes categorical columns on the fly.
type storeBuilder struct {
	store                                        *ColumnStore
	seniority, contract, size, title, remote, ct *dictionary
}

func newStoreBuilder(capacity int) *storeBuilder {
	return &storeBuilder{
		store: &ColumnStore{
			Years:        make([]int32, 0, capacity),
			Salaries:     make([]float64, 0, capacity),
			SeniorityIDs: make([]int32, 0, capacity),
			ContractIDs:  make([]int32, 0, capacity),
			SizeIDs:      make([]int32, 0, capacity),
			TitleIDs:     make([]int32, 0, capacity),
			RemoteIDs:    make([]int32, 0, capacity),
			CountryIDs:   make([]int32, 0, capacity),
		},
		seniority: newDictionary(),
		contract:  newDictionary(),
		size:      newDictionary(),
		title:     newDictionary(),
		remote:    newDictionary(),
		ct:        newDictionary(),
	}
}

func (b *storeBuilder) add(rec models.Record) {
	s := b.store
	s.Years = append(s.Years, int32(rec.Year))
	s.Salaries = append(s.Salaries, rec.SalaryUSD)
	s.SeniorityIDs = append(s.SeniorityIDs, b.seniority.encode(rec.Seniority))
	s.ContractIDs = append(s.ContractIDs, b.contract.encode(rec.Contract))
	s.SizeIDs = append(s.SizeIDs, b.size.encode(rec.CompanySize))
	s.TitleIDs = append(s.TitleIDs, b.title.encode(rec.Title))
	s.RemoteIDs = append(s.RemoteIDs, b.remote.encode(rec.RemoteMode))

	country := NoCountry
	if rec.Country != "" {
		country = b.ct.encode(rec.Country)
	}
	s.CountryIDs = append(s.CountryIDs, country)
}

func (b *storeBuilder) build() *ColumnStore {
	s := b.store
	s.SeniorityDict = b.seniority.values
	s.ContractDict = b.contract.values
	s.SizeDict = b.size.values
	s.TitleDict = b.title.values
	s.RemoteDict = b.remote.values
	s.CountryDict = b.ct.values
	return s
}

// FromRecords builds a store from already parsed records, keeping their order.
func FromRecords(records []models.Record) *ColumnStore {
	b := newStoreBuilder(len(records))
	for _, rec := range records {
		b.add(rec)
	}
	return b.build()
}
