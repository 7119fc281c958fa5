package models

import "slices"

// State is everything that gets persisted: the three collections in display order.
type State struct {
	WantToPlay []WantToPlay `json:"wantToPlay"`
	Finished   []Finished   `json:"finished"`
	Abandoned  []Abandoned  `json:"abandoned"`
}

// EmptyState is the canonical state used when nothing has been saved yet.
func EmptyState() State {
	return State{
		WantToPlay: []WantToPlay{},
		Finished:   []Finished{},
		Abandoned:  []Abandoned{},
	}
}

// Normalize replaces nil collections with empty ones so the state always
// serializes as arrays.
func (s *State) Normalize() {
	if s.WantToPlay == nil {
		s.WantToPlay = []WantToPlay{}
	}
	if s.Finished == nil {
		s.Finished = []Finished{}
	}
	if s.Abandoned == nil {
		s.Abandoned = []Abandoned{}
	}
}

// Clone returns a copy that shares no slice backing arrays with s.
func (s State) Clone() State {
	clone := State{
		WantToPlay: slices.Clone(s.WantToPlay),
		Finished:   slices.Clone(s.Finished),
		Abandoned:  slices.Clone(s.Abandoned),
	}
	clone.Normalize()
	return clone
}

func (s State) Len(key CollectionKey) int {
	switch key {
	case WantToPlayCollection:
		return len(s.WantToPlay)
	case FinishedCollection:
		return len(s.Finished)
	case AbandonedCollection:
		return len(s.Abandoned)
	}
	return 0
}

// Records returns the collection as the Record interface, in display order.
func (s State) Records(key CollectionKey) []Record {
	var records []Record
	switch key {
	case WantToPlayCollection:
		records = make([]Record, 0, len(s.WantToPlay))
		for _, g := range s.WantToPlay {
			records = append(records, g)
		}
	case FinishedCollection:
		records = make([]Record, 0, len(s.Finished))
		for _, g := range s.Finished {
			records = append(records, g)
		}
	case AbandonedCollection:
		records = make([]Record, 0, len(s.Abandoned))
		for _, g := range s.Abandoned {
			records = append(records, g)
		}
	}
	return records
}

// Find returns the record with id in the collection.
func (s State) Find(key CollectionKey, id string) (Record, bool) {
	for _, record := range s.Records(key) {
		if record.RecordID() == id {
			return record, true
		}
	}
	return nil, false
}

// Append adds a record at the end of the collection its type belongs to.
func (s *State) Append(record Record) bool {
	switch r := record.(type) {
	case WantToPlay:
		s.WantToPlay = append(s.WantToPlay, r)
	case Finished:
		s.Finished = append(s.Finished, r)
	case Abandoned:
		s.Abandoned = append(s.Abandoned, r)
	default:
		return false
	}
	return true
}

// Replace swaps the record sharing the new record's id, keeping its position.
func (s *State) Replace(record Record) bool {
	switch r := record.(type) {
	case WantToPlay:
		return replaceByID(s.WantToPlay, r)
	case Finished:
		return replaceByID(s.Finished, r)
	case Abandoned:
		return replaceByID(s.Abandoned, r)
	}
	return false
}

// Remove deletes the record with id and returns it.
func (s *State) Remove(key CollectionKey, id string) (Record, bool) {
	switch key {
	case WantToPlayCollection:
		return removeByID(&s.WantToPlay, id)
	case FinishedCollection:
		return removeByID(&s.Finished, id)
	case AbandonedCollection:
		return removeByID(&s.Abandoned, id)
	}
	return nil, false
}

func replaceByID[T Record](records []T, record T) bool {
	index := slices.IndexFunc(records, func(r T) bool { return r.RecordID() == record.RecordID() })
	if index < 0 {
		return false
	}
	records[index] = record
	return true
}

func removeByID[T Record](records *[]T, id string) (Record, bool) {
	index := slices.IndexFunc(*records, func(r T) bool { return r.RecordID() == id })
	if index < 0 {
		return nil, false
	}
	removed := (*records)[index]
	*records = slices.Delete(*records, index, index+1)
	return removed, true
}
