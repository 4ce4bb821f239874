// Package strategy implements the five independent candidate extraction
// strategies and the ordered first-writer-wins merge that folds their
// partial results into a single record.
package strategy

import (
	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
)

// Partial is one strategy's contribution: committed field values where the
// strategy was unambiguous, plus scored-later candidates for the two
// high-ambiguity fields.
type Partial struct {
	Price   int
	Year    int
	Make    string
	Model   string
	Trim    string
	Mileage int // -1 when unset
	VIN     string
	Stock   string

	Condition model.Condition

	DealerName  string
	DealerCity  string
	DealerState string
	Zip         string

	Title string

	PriceCandidates   []model.Candidate
	MileageCandidates []model.Candidate
}

// NewPartial returns an empty partial with unset sentinels in place.
func NewPartial() *Partial {
	return &Partial{Mileage: -1, Condition: model.ConditionUnknown}
}

// Empty reports whether the strategy committed no fields at all. Candidates
// alone do not count — they are diagnostic until scored and selected.
func (p *Partial) Empty() bool {
	return p.Price == 0 && p.Year == 0 && p.Make == "" && p.Model == "" &&
		p.Trim == "" && p.Mileage < 0 && p.VIN == "" && p.Stock == "" &&
		p.Condition == model.ConditionUnknown && p.DealerName == "" &&
		p.DealerCity == "" && p.DealerState == "" && p.Zip == "" && p.Title == ""
}

// applyTitle decomposes a headline into the partial's vehicle fields,
// writing only fields still absent.
func (p *Partial) applyTitle(title string) {
	if title == "" {
		return
	}
	if p.Title == "" {
		p.Title = title
	}
	tf := parse.Title(title)
	if p.Year == 0 {
		p.Year = tf.Year
	}
	if p.Make == "" {
		p.Make = tf.Make
	}
	if p.Model == "" {
		p.Model = tf.Model
	}
	if p.Trim == "" {
		p.Trim = tf.Trim
	}
}

// Merge folds src into dst, writing only fields dst has not already
// committed. Candidates always accumulate so later strategies still show up
// in the diagnostic lists. Returns true if src committed at least one field.
func Merge(dst, src *Partial) bool {
	contributed := false
	set := func(cond bool, assign func()) {
		if cond {
			assign()
			contributed = true
		}
	}

	set(dst.Price == 0 && src.Price != 0, func() { dst.Price = src.Price })
	set(dst.Year == 0 && src.Year != 0, func() { dst.Year = src.Year })
	set(dst.Make == "" && src.Make != "", func() { dst.Make = src.Make })
	set(dst.Model == "" && src.Model != "", func() { dst.Model = src.Model })
	set(dst.Trim == "" && src.Trim != "", func() { dst.Trim = src.Trim })
	set(dst.Mileage < 0 && src.Mileage >= 0, func() { dst.Mileage = src.Mileage })
	set(dst.VIN == "" && src.VIN != "", func() { dst.VIN = src.VIN })
	set(dst.Stock == "" && src.Stock != "", func() { dst.Stock = src.Stock })
	set(dst.Condition == model.ConditionUnknown && src.Condition != model.ConditionUnknown,
		func() { dst.Condition = src.Condition })
	set(dst.DealerName == "" && src.DealerName != "", func() { dst.DealerName = src.DealerName })
	set(dst.DealerCity == "" && src.DealerCity != "", func() { dst.DealerCity = src.DealerCity })
	set(dst.DealerState == "" && src.DealerState != "", func() { dst.DealerState = src.DealerState })
	set(dst.Zip == "" && src.Zip != "", func() { dst.Zip = src.Zip })
	set(dst.Title == "" && src.Title != "", func() { dst.Title = src.Title })

	dst.PriceCandidates = append(dst.PriceCandidates, src.PriceCandidates...)
	dst.MileageCandidates = append(dst.MileageCandidates, src.MileageCandidates...)

	return contributed
}
