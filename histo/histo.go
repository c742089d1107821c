package histo

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Combines two sets element-wise using the function f, which should take 2 histograms
//to be combined and one more where the result of the operation is stored.
func Combine(f func(a, b, dest *Data), a, b, dest *Set) {
	if a.Len() != b.Len() || a.Len() != dest.Len() {
		panic("oxdna/histo.Combine: Ill-formed sets for combining")
	}
	//This should work if they are both nil
	if !(a.dividers == nil && b.dividers == nil) && !floats.Equal(a.dividers, b.dividers) {
		panic("oxdna/histo.Combine: Sets don't have the same dividers")
	}
	for i, v := range dest.d {
		f(a.d[i], b.d[i], v)
	}
}

//A set of histograms over a common range, one per data series.
type Set struct {
	d        []*Data
	dividers []float64 //if not nil, all histograms have the same dividers
}

//NewSet returns a new set of n histograms with dividers dividers.
//Dividers can be nil, in which case the elements of the set will
//not be forced to share them.
func NewSet(n int, dividers []float64) *Set {
	ret := new(Set)
	ret.d = make([]*Data, n)
	ret.dividers = dividers
	return ret
}

func (S *Set) Len() int {
	return len(S.d)
}

//Copies the dividers shared by the set
func (S *Set) CopyDividers(dest ...[]float64) []float64 {
	if S.dividers == nil {
		return nil
	}
	d := getCopySlice(len(S.dividers), dest...)
	copy(d, S.dividers)
	return d
}

func (S *Set) String() string {
	ret := fmt.Sprintf("histograms:%d | Data:\n", len(S.d))
	t := make([]string, 0, len(S.d))
	for _, v := range S.d {
		t = append(t, v.String())
	}
	return ret + strings.Join(t, "\n\n")
}

func (S *Set) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		D        []*Data   `json:"data"`
		Dividers []float64 `json:"dividers"`
	}{
		D:        S.d,
		Dividers: S.dividers,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (S *Set) UnmarshalJSON(b []byte) error {
	var a struct {
		D        []*Data   `json:"data"`
		Dividers []float64 `json:"dividers"`
	}

	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	S.d = a.D
	S.dividers = a.Dividers
	return nil
}

//Fill fills the set with empty histograms.
//If the set has a non-nil dividers slice,
//that slice is used for all the histograms created.
func (S *Set) Fill() {
	for i := range S.d {
		S.NewHisto(i, S.dividers, nil)
	}
}

//Check checks if the given index is within range.
//If pan is given and true, it panics when out of range,
//otherwise, it returns an error.
func (S *Set) Check(i int, pan ...bool) error {
	p := false
	var err error
	if len(pan) > 0 && pan[0] {
		p = true
	}
	if i < 0 || i >= len(S.d) {
		err = fmt.Errorf("oxdna/histo: Histogram index out of range")
	}
	if err != nil && p {
		panic(err.Error())
	}
	return err
}

//NewHisto puts a new histogram in the i position of the set. Dividers can be nil,
//in which case the set must have its own. If there are no dividers at all, the
//function will panic. rawdata can also be nil, in which case an empty histogram
//is put in the position.
func (S *Set) NewHisto(i int, dividers []float64, rawdata []float64, ID ...int) {
	S.Check(i, true)
	if dividers == nil {
		if S.dividers != nil {
			dividers = S.dividers
		} else {
			panic("oxdna/histo.Set.NewHisto: dividers not given, and can't be taken from the set")
		}
	} else if S.dividers != nil && !floats.Equal(S.dividers, dividers) {
		log.Printf("oxdna/histo.Set.NewHisto: dividers given but don't match the dividers of the set. The set's dividers will be used.")
		dividers = S.dividers
	}
	S.d[i] = NewData(dividers, rawdata, ID...)
}

//View returns a view of the histogram in the i position of the set
func (S *Set) View(i int) *Data {
	S.Check(i, true)
	return S.d[i]
}

//Adds one or more data points to the histogram in the i position of the set
func (S *Set) AddData(i int, point ...float64) {
	S.Check(i, true)
	S.d[i].AddData(point...)
}

//Normalize all the histograms in the set
func (S *Set) NormalizeAll() {
	for _, v := range S.d {
		v.Normalize()
	}
}

//Un-normalize all the histograms in the set
func (S *Set) UnNormalizeAll() {
	for _, v := range S.d {
		v.UnNormalize()
	}
}

//AutoDividers returns dividers bracketing every series given, the way the
//distance tool sizes its plots: the edges run from floor(min-0.1*min) to
//ceil(max+0.1*max) over all series, and their number is half the length of
//the first series, rounded up.
func AutoDividers(series ...[]float64) []float64 {
	if len(series) == 0 {
		panic("oxdna/histo.AutoDividers: no data to bracket")
	}
	for _, v := range series {
		if len(v) == 0 {
			panic("oxdna/histo.AutoDividers: empty data series")
		}
	}
	lower := floats.Min(series[0])
	upper := floats.Max(series[0])
	for _, v := range series[1:] {
		lower = math.Min(lower, floats.Min(v))
		upper = math.Max(upper, floats.Max(v))
	}
	edges := int(math.Ceil(float64(len(series[0])) / 2))
	if edges < 2 {
		//a histogram needs at least one bin
		edges = 2
	}
	return floats.Span(make([]float64, edges), math.Floor(lower-lower*0.1), math.Ceil(upper+upper*0.1))
}

type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

func (D *Data) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		ID:         D.id,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}

	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	D.id = a.ID
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.dividers)-1)
	h := make([]string, 0, len(D.dividers)-1)
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

//Returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//If an ID for the histogram is given, it will be set. If not, the ID will
//be set to -1.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

//Adds the given data point(s) to the histogram. Points outside the dividers
//still count towards the total, so frequencies stay fractions of everything
//offered to the histogram, not just of what landed in a bin.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		for j, w := range D.dividers {
			//Values that are larger than the last divider are just omitted.
			if j == len(D.dividers)-1 {
				break
			}
			if w <= v && v < D.dividers[j+1] {
				D.histo[j]++
				break
			}
		}
	}
	D.total += len(point)
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Normalized returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

//normalizes or un-normalizes the histogram depending
//on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//Copies the dividers of the histogram
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	copy(d, D.dividers)
	return d
}

//Copies the bin contents of the histogram
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	copy(d, D.histo)
	return d
}

func (D *Data) View() []float64 {
	return D.histo
}

//Add adds the histograms a and b putting the result in the receiver.
func (D *Data) Add(a, b *Data) {
	D.dividers = a.CopyDividers(D.dividers)
	if len(a.dividers) != len(b.dividers) {
		panic("oxdna/histo.Data.Add: Ill-formed histograms for addition")
	}
	if len(D.histo) != len(a.histo) {
		D.histo = make([]float64, len(a.histo))
	}
	for i, v := range a.dividers {
		if v != b.dividers[i] {
			panic("oxdna/histo.Data.Add: Dividers must match in added histograms")
		}
		if i == len(a.dividers)-1 {
			break //a.histo has 1 less element than a.dividers, so we skip the next operation for the last one.
		}
		D.histo[i] = a.histo[i] + b.histo[i]
	}
	D.total = a.total + b.total
	D.normalized = a.normalized && b.normalized
}

//Sub subtracts the histograms a and b putting the result in the receiver.
//if abs is given and true (only the first element is considered) the
//differences are stored as absolute values.
func (D *Data) Sub(a, b *Data, abs ...bool) {
	f := func(a float64) float64 { return a }
	if len(abs) > 0 && abs[0] {
		f = math.Abs
	}
	D.dividers = a.CopyDividers(D.dividers)
	if len(a.dividers) != len(b.dividers) {
		panic("oxdna/histo.Data.Sub: Ill-formed histograms for subtraction")
	}
	if len(D.histo) != len(a.histo) {
		D.histo = make([]float64, len(a.histo))
	}
	for i, v := range a.dividers {
		if v != b.dividers[i] {
			panic("oxdna/histo.Data.Sub: Dividers must match in subtracted histograms")
		}
		if i == len(a.dividers)-1 {
			break //a.histo has 1 less element than a.dividers, so we skip the next operation for the last one.
		}
		D.histo[i] = f(a.histo[i] - b.histo[i])
	}
}

func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//ReHisto rebuilds the histogram from the dividers and raw data given. The
//caller's series keeps its order; a sorted copy is used internally. Values
//outside the dividers are omitted from the bins but still counted in the
//total, as in AddData.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	D.total = len(rawdata)
	if rawdata != nil {
		sorted := make([]float64, len(rawdata))
		copy(sorted, rawdata)
		sort.Float64s(sorted)
		//stat.Histogram just panics instead of omitting the values that are off limits
		//so we remove them here before the call.
		maxi := sort.SearchFloat64s(sorted, dividers[len(dividers)-1])
		mini := sort.SearchFloat64s(sorted, dividers[0])
		if maxi < len(sorted) {
			sorted = sorted[:maxi]
		}
		if mini != 0 {
			sorted = sorted[mini:]
		}
		rawdata = sorted
	}
	D.histo = stat.Histogram(nil, dividers, rawdata, nil)
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0]
		if len(dest[0]) > N {
			d = dest[0][:N] //the returned slice must have exactly N elements
		}
	} else {
		d = make([]float64, N)
	}
	return d
}
