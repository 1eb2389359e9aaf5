package leveldbstore

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb/iterator"

	"salesloader/domain/record"
	"salesloader/internal/errors"
)

// scanner groups consecutive cell keys into one result per row
type scanner struct {
	ctx     context.Context
	table   string
	iter    iterator.Iterator
	pending *record.StoredCell
	current record.Result
	err     error
	done    bool
}

func (s *scanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return false
	}

	var result record.Result
	if s.pending != nil {
		result = record.Result{Row: s.pending.Row, Cells: []record.StoredCell{*s.pending}}
		s.pending = nil
	}

	for s.iter.Next() {
		row, family, qualifier, ok := splitCellKey(s.table, s.iter.Key())
		if !ok {
			s.err = errors.Storage("scan", fmt.Errorf("malformed cell key %q", s.iter.Key()))
			return false
		}
		cell := record.StoredCell{
			Row:       row,
			Family:    family,
			Qualifier: qualifier,
			Value:     append([]byte(nil), s.iter.Value()...),
		}
		if len(result.Cells) > 0 && row != result.Row {
			s.pending = &cell
			s.current = result
			return true
		}
		result.Row = row
		result.Cells = append(result.Cells, cell)
	}
	if err := s.iter.Error(); err != nil {
		s.err = errors.Storage("scan", err)
		return false
	}

	s.done = true
	if len(result.Cells) == 0 {
		return false
	}
	s.current = result
	return true
}

func (s *scanner) Result() record.Result { return s.current }

func (s *scanner) Err() error { return s.err }

func (s *scanner) Close() error {
	s.iter.Release()
	return nil
}
