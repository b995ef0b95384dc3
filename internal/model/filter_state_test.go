package model

import (
	"reflect"
	"testing"
)

func TestNewFilterStateNormalises(t *testing.T) {
	state := NewFilterState([]string{"Tech", "", "Tech", "Energy"}, nil, []string{"Low"})

	if want := []string{"Tech", "Energy"}; !reflect.DeepEqual(state.Sectors, want) {
		t.Errorf("Sectors = %v, want %v", state.Sectors, want)
	}
	if state.Industries == nil || len(state.Industries) != 0 {
		t.Errorf("Industries = %v, want empty non-nil", state.Industries)
	}
	if state.IsEmpty() {
		t.Error("expected non-empty state")
	}
}

func TestFilterStateTransitions(t *testing.T) {
	initial := NewFilterState(nil, nil, nil)
	if !initial.IsEmpty() {
		t.Fatal("expected empty initial state")
	}

	once := initial.WithSectors([]string{"Tech"})
	twice := once.WithSectors([]string{"Tech"})
	if !once.Equal(twice) {
		t.Errorf("setting sectors twice changed state: %+v vs %+v", once, twice)
	}
	if !initial.IsEmpty() {
		t.Error("WithSectors mutated the receiver")
	}

	cleared := twice.WithSectors(nil).WithIndustries(nil).WithClassificationTags(nil)
	if !cleared.Equal(initial) {
		t.Errorf("clearing all sets = %+v, want initial state", cleared)
	}
}

func TestFilterStateEqualIgnoresOrder(t *testing.T) {
	a := NewFilterState([]string{"Tech", "Energy"}, []string{"Oil"}, nil)
	b := NewFilterState([]string{"Energy", "Tech"}, []string{"Oil", "Oil"}, []string{})

	if !a.Equal(b) {
		t.Errorf("expected %+v to equal %+v", a, b)
	}
	if a.Equal(a.WithClassificationTags([]string{"Low"})) {
		t.Error("expected states with different tags to differ")
	}
}

func TestCompanyRecordLabel(t *testing.T) {
	tests := []struct {
		record CompanyRecord
		want   string
	}{
		{CompanyRecord{Symbol: "AAPL", CompanyName: "Apple Inc."}, "AAPL - Apple Inc."},
		{CompanyRecord{Symbol: "XYZ"}, "XYZ"},
	}
	for _, tt := range tests {
		if got := tt.record.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
