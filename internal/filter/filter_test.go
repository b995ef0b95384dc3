package filter

import (
	"reflect"
	"testing"

	"github.com/stocksuperhero/dashboard/internal/model"
)

func sampleRecords() []model.CompanyRecord {
	return []model.CompanyRecord{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", Sector: "Tech", Industry: "Hardware", ClassificationTag: "High"},
		{Symbol: "SBUX", CompanyName: "Starbucks", Sector: "Consumer", Industry: "Restaurants", ClassificationTag: "Low"},
		{Symbol: "MSFT", CompanyName: "Microsoft", Sector: "Tech", Industry: "Software", ClassificationTag: "High"},
	}
}

func TestDerivedViewScenarios(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		state model.FilterState
		want  []string
	}{
		{
			name:  "sector narrows view",
			state: model.NewFilterState([]string{"Tech"}, nil, nil),
			want:  []string{"AAPL", "MSFT"},
		},
		{
			name:  "tag narrows view",
			state: model.NewFilterState(nil, nil, []string{"Low"}),
			want:  []string{"SBUX"},
		},
		{
			name:  "unknown sector yields empty view",
			state: model.NewFilterState([]string{"Energy"}, nil, nil),
			want:  []string{},
		},
		{
			name:  "dimensions are combined with AND",
			state: model.NewFilterState([]string{"Tech"}, []string{"Software"}, []string{"High"}),
			want:  []string{"MSFT"},
		},
		{
			name:  "values within a dimension are combined with OR",
			state: model.NewFilterState(nil, []string{"Restaurants", "Hardware"}, nil),
			want:  []string{"AAPL", "SBUX"},
		},
		{
			name:  "conflicting dimensions match nothing",
			state: model.NewFilterState([]string{"Consumer"}, nil, []string{"High"}),
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := DerivedView(records, tt.state)
			if view == nil {
				t.Fatal("expected non-nil view")
			}
			if got := Symbols(view); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DerivedView() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableOptionsScenario(t *testing.T) {
	records := sampleRecords()

	opts := AvailableOptions(records, model.NewFilterState([]string{"Tech"}, nil, nil))

	if want := []string{"Tech", "Consumer"}; !reflect.DeepEqual(opts.Sectors, want) {
		t.Errorf("Sectors = %v, want %v", opts.Sectors, want)
	}
	if want := []string{"Hardware", "Software"}; !reflect.DeepEqual(opts.Industries, want) {
		t.Errorf("Industries = %v, want %v", opts.Industries, want)
	}
	if want := []string{"High", "Low"}; !reflect.DeepEqual(opts.ClassificationTags, want) {
		t.Errorf("ClassificationTags = %v, want %v", opts.ClassificationTags, want)
	}
}

func TestAvailableOptionsIgnoresOtherSelections(t *testing.T) {
	records := sampleRecords()
	all := AvailableOptions(records, model.FilterState{})

	// industry and tag selections never narrow any option list
	opts := AvailableOptions(records, model.NewFilterState(nil, []string{"Software"}, []string{"Low"}))
	if !reflect.DeepEqual(opts, all) {
		t.Errorf("AvailableOptions() = %+v, want %+v", opts, all)
	}

	wantIndustries := []string{"Hardware", "Restaurants", "Software"}
	if !reflect.DeepEqual(all.Industries, wantIndustries) {
		t.Errorf("Industries = %v, want %v", all.Industries, wantIndustries)
	}
}

func TestUnknownSectorKeepsSectorOptions(t *testing.T) {
	records := sampleRecords()
	state := model.NewFilterState([]string{"Energy"}, nil, nil)

	if view := DerivedView(records, state); len(view) != 0 {
		t.Fatalf("expected empty view, got %v", Symbols(view))
	}

	opts := AvailableOptions(records, state)
	if want := []string{"Tech", "Consumer"}; !reflect.DeepEqual(opts.Sectors, want) {
		t.Errorf("Sectors = %v, want %v", opts.Sectors, want)
	}
	if len(opts.Industries) != 0 {
		t.Errorf("Industries = %v, want none", opts.Industries)
	}
}

func TestEmptyInput(t *testing.T) {
	opts := AvailableOptions(nil, model.NewFilterState([]string{"Tech"}, nil, nil))
	if opts.Sectors == nil || opts.Industries == nil || opts.ClassificationTags == nil {
		t.Fatalf("expected non-nil option lists, got %+v", opts)
	}
	if len(opts.Sectors)+len(opts.Industries)+len(opts.ClassificationTags) != 0 {
		t.Errorf("expected empty options, got %+v", opts)
	}

	view := DerivedView([]model.CompanyRecord{}, model.NewFilterState([]string{"Tech"}, nil, nil))
	if view == nil || len(view) != 0 {
		t.Errorf("expected empty non-nil view, got %v", view)
	}
}

func TestIdentityLaw(t *testing.T) {
	records := append(sampleRecords(), model.CompanyRecord{Symbol: "ODD", Sector: "Tech"})

	view := DerivedView(records, model.NewFilterState(nil, nil, nil))
	if !reflect.DeepEqual(view, records) {
		t.Errorf("DerivedView() with empty state = %v, want input unchanged", Symbols(view))
	}

	blank := model.FilterState{Sectors: []string{""}, Industries: []string{"", ""}}
	view = DerivedView(records, blank)
	if !reflect.DeepEqual(view, records) {
		t.Errorf("DerivedView() with blank values = %v, want input unchanged", Symbols(view))
	}
}

func TestViewIsOrderedSubsequence(t *testing.T) {
	records := []model.CompanyRecord{
		{Symbol: "XOM", Sector: "Energy", Industry: "Oil", ClassificationTag: "Low"},
		{Symbol: "AAPL", Sector: "Tech", Industry: "Hardware", ClassificationTag: "High"},
		{Symbol: "CVX", Sector: "Energy", Industry: "Oil", ClassificationTag: "Mid"},
		{Symbol: "NVDA", Sector: "Tech", Industry: "Semis", ClassificationTag: "High"},
		{Symbol: "SLB", Sector: "Energy", Industry: "Services", ClassificationTag: "Low"},
	}

	states := []model.FilterState{
		model.NewFilterState([]string{"Energy"}, nil, nil),
		model.NewFilterState(nil, nil, []string{"Low", "High"}),
		model.NewFilterState([]string{"Energy", "Tech"}, []string{"Oil", "Semis"}, nil),
	}

	for _, state := range states {
		view := DerivedView(records, state)
		i := 0
		for _, r := range view {
			for i < len(records) && records[i].Symbol != r.Symbol {
				i++
			}
			if i == len(records) {
				t.Fatalf("view %v is not an ordered subsequence of input", Symbols(view))
			}
			i++
		}
	}
}

func TestSectorMonotonicity(t *testing.T) {
	records := sampleRecords()
	tags := []string{"High", "Low"}

	smaller := DerivedView(records, model.NewFilterState([]string{"Tech"}, nil, tags))
	larger := DerivedView(records, model.NewFilterState([]string{"Tech", "Consumer"}, nil, tags))

	if len(larger) < len(smaller) {
		t.Errorf("superset of sectors shrank view: %d < %d", len(larger), len(smaller))
	}
}

func TestAvailableOptionsIsIdempotent(t *testing.T) {
	records := sampleRecords()
	snapshot := sampleRecords()
	state := model.NewFilterState([]string{"Tech"}, []string{"Software"}, nil)

	first := AvailableOptions(records, state)
	second := AvailableOptions(records, state)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("AvailableOptions() not idempotent: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(records, snapshot) {
		t.Error("records were mutated")
	}
}

func TestIncompleteRecords(t *testing.T) {
	records := []model.CompanyRecord{
		{Symbol: "AAPL", Sector: "Tech", Industry: "Hardware", ClassificationTag: "High"},
		{Symbol: "BAD1", Sector: "", Industry: "Unknown", ClassificationTag: "High"},
		{Symbol: "BAD2", Sector: "Tech", Industry: "", ClassificationTag: "High"},
		{Symbol: "", Sector: "Tech", Industry: "Ghost", ClassificationTag: "Low"},
	}

	opts := AvailableOptions(records, model.FilterState{})
	if want := []string{"Tech"}; !reflect.DeepEqual(opts.Sectors, want) {
		t.Errorf("Sectors = %v, want %v", opts.Sectors, want)
	}
	if want := []string{"Hardware"}; !reflect.DeepEqual(opts.Industries, want) {
		t.Errorf("Industries = %v, want %v", opts.Industries, want)
	}
	if want := []string{"High"}; !reflect.DeepEqual(opts.ClassificationTags, want) {
		t.Errorf("ClassificationTags = %v, want %v", opts.ClassificationTags, want)
	}

	view := DerivedView(records, model.NewFilterState(nil, nil, []string{"High"}))
	if got, want := Symbols(view), []string{"AAPL"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DerivedView() = %v, want %v", got, want)
	}
}

func TestPrune(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		state model.FilterState
		want  []string
	}{
		{
			name:  "drops industries outside selected sectors",
			state: model.NewFilterState([]string{"Consumer"}, []string{"Software", "Restaurants"}, nil),
			want:  []string{"Restaurants"},
		},
		{
			name:  "keeps industries when no sector selected",
			state: model.NewFilterState(nil, []string{"Software", "Restaurants"}, nil),
			want:  []string{"Software", "Restaurants"},
		},
		{
			name:  "drops everything for unknown sector",
			state: model.NewFilterState([]string{"Energy"}, []string{"Software"}, nil),
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prune(records, tt.state)
			if !reflect.DeepEqual(got.Industries, tt.want) {
				t.Errorf("Prune().Industries = %v, want %v", got.Industries, tt.want)
			}
			if !reflect.DeepEqual(got.Sectors, tt.state.Sectors) {
				t.Errorf("Prune() changed sectors: %v", got.Sectors)
			}
			if again := Prune(records, got); !again.Equal(got) {
				t.Errorf("Prune() not idempotent: %+v vs %+v", again, got)
			}
		})
	}
}
