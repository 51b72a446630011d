package engine

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"salarydash/internal/models"
)

// Selection holds the allowed values of each filter dimension.
// A nil or empty slice allows nothing.
type Selection struct {
	Years        []int
	Seniorities  []string
	Contracts    []string
	CompanySizes []string
}

// IsEmpty reports whether some dimension allows no value at all.
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 || len(s.Seniorities) == 0 ||
		len(s.Contracts) == 0 || len(s.CompanySizes) == 0
}

// Canonical renders the selection independently of value order and duplicates.
func (s Selection) Canonical() string {
	years := slices.Clone(s.Years)
	slices.Sort(years)
	yearStrs := make([]string, 0, len(years))
	for _, y := range slices.Compact(years) {
		yearStrs = append(yearStrs, strconv.Itoa(y))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(yearStrs, ","))
	for _, values := range [][]string{s.Seniorities, s.Contracts, s.CompanySizes} {
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		sb.WriteByte('|')
		sb.WriteString(strings.Join(slices.Compact(sorted), "\x1f"))
	}
	return sb.String()
}

// DefaultSelection allows every value present in the dataset.
func (cs *ColumnStore) DefaultSelection() Selection {
	opts := cs.Options()
	return Selection{
		Years:        opts.Years,
		Seniorities:  opts.Seniorities,
		Contracts:    opts.Contracts,
		CompanySizes: opts.CompanySizes,
	}
}

// View is an ordered subset of store rows (index list, no data copy).
type View struct {
	store *ColumnStore
	rows  []int32
}

// All returns a view over every row of the store.
func (cs *ColumnStore) All() *View {
	rows := make([]int32, cs.Len())
	for i := range rows {
		rows[i] = int32(i)
	}
	return &View{store: cs, rows: rows}
}

// Apply returns the rows matching every dimension of sel, in dataset order.
// Values unknown to the dataset match nothing.
func (cs *ColumnStore) Apply(sel Selection) *View {
	view := &View{store: cs, rows: make([]int32, 0)}
	if sel.IsEmpty() || cs.Len() == 0 {
		return view
	}

	years := make(map[int32]struct{}, len(sel.Years))
	for _, y := range sel.Years {
		if y < math.MinInt32 || y > math.MaxInt32 {
			continue
		}
		years[int32(y)] = struct{}{}
	}
	seniority := dictMask(cs.SeniorityDict, sel.Seniorities)
	contract := dictMask(cs.ContractDict, sel.Contracts)
	size := dictMask(cs.SizeDict, sel.CompanySizes)

	// Single pass: each row checks all four dimensions with O(1) lookups.
	for i, y := range cs.Years {
		if _, ok := years[y]; !ok {
			continue
		}
		if !seniority[cs.SeniorityIDs[i]] || !contract[cs.ContractIDs[i]] || !size[cs.SizeIDs[i]] {
			continue
		}
		view.rows = append(view.rows, int32(i))
	}
	return view
}

// dictMask projects a set of allowed strings onto dictionary IDs.
func dictMask(dict []string, allowed []string) []bool {
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	mask := make([]bool, len(dict))
	for id, v := range dict {
		if _, ok := set[v]; ok {
			mask[id] = true
		}
	}
	return mask
}

// Len returns the number of rows in the view.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.rows)
}

// Store returns the dataset the view points into.
func (v *View) Store() *ColumnStore {
	return v.store
}

// Rows returns the store row indices of the view. Callers must not modify it.
func (v *View) Rows() []int32 {
	return v.rows
}

// Records materializes up to limit rows starting at offset; limit <= 0 means all.
func (v *View) Records(offset, limit int) []models.Record {
	total := v.Len()
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.Record{}
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	out := make([]models.Record, 0, end-offset)
	for _, row := range v.rows[offset:end] {
		out = append(out, v.store.Record(int(row)))
	}
	return out
}
