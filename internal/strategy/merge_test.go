package strategy

import (
	"testing"

	"github.com/taylorp5/dealwise/internal/model"
)

func TestMerge_FirstWriterWins(t *testing.T) {
	dst := NewPartial()
	dst.Price = 23450
	dst.Make = "Toyota"

	src := NewPartial()
	src.Price = 26000
	src.Make = "Honda"
	src.Model = "Tundra"
	src.Mileage = 12500

	if !Merge(dst, src) {
		t.Fatal("Merge returned false despite committing Model and Mileage")
	}

	if dst.Price != 23450 {
		t.Errorf("price overwritten: %d", dst.Price)
	}
	if dst.Make != "Toyota" {
		t.Errorf("make overwritten: %q", dst.Make)
	}
	if dst.Model != "Tundra" {
		t.Errorf("model not filled: %q", dst.Model)
	}
	if dst.Mileage != 12500 {
		t.Errorf("mileage not filled: %d", dst.Mileage)
	}
}

func TestMerge_ZeroMileageCommits(t *testing.T) {
	dst := NewPartial()
	src := NewPartial()
	src.Mileage = 0 // a real reading on a new vehicle

	if !Merge(dst, src) {
		t.Fatal("zero mileage should count as a commit")
	}
	if dst.Mileage != 0 {
		t.Errorf("mileage = %d", dst.Mileage)
	}
}

func TestMerge_NoContribution(t *testing.T) {
	dst := NewPartial()
	dst.Price = 23450

	src := NewPartial()
	src.Price = 26000 // loses to the earlier writer

	if Merge(dst, src) {
		t.Error("Merge reported a contribution when every field was already set or empty")
	}
}

func TestMerge_CandidatesAlwaysAccumulate(t *testing.T) {
	dst := NewPartial()
	dst.PriceCandidates = []model.Candidate{{Value: 23450, Source: model.SourceStructuredData}}

	src := NewPartial()
	src.PriceCandidates = []model.Candidate{{Value: 26000, Source: model.SourceDOM}}
	src.MileageCandidates = []model.Candidate{{Value: 12500, Source: model.SourceDOM}}

	Merge(dst, src)

	if len(dst.PriceCandidates) != 2 {
		t.Errorf("price candidates = %+v", dst.PriceCandidates)
	}
	if len(dst.MileageCandidates) != 1 {
		t.Errorf("mileage candidates = %+v", dst.MileageCandidates)
	}
}

func TestMerge_ConditionUnknownIsUnset(t *testing.T) {
	dst := NewPartial()
	dst.Condition = model.ConditionUsed

	src := NewPartial()
	src.Condition = model.ConditionNew

	Merge(dst, src)
	if dst.Condition != model.ConditionUsed {
		t.Errorf("condition overwritten: %q", dst.Condition)
	}

	dst2 := NewPartial()
	src2 := NewPartial()
	src2.Condition = model.ConditionNew
	Merge(dst2, src2)
	if dst2.Condition != model.ConditionNew {
		t.Errorf("condition not filled: %q", dst2.Condition)
	}
}
