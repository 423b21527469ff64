// Package band classifies radio frequencies into amateur bands.
package band

import "strconv"

// Band identifies one amateur radio band. NoBand is the zero value and
// doubles as the "no filter" selector.
type Band int

const (
	NoBand Band = iota
	Band160M
	Band80M
	Band60M
	Band40M
	Band30M
	Band20M
	Band17M
	Band15M
	Band12M
	Band10M
	Band6M
	Band2M
	Band125CM
	Band70CM
	Band33CM
	Band23CM
)

// limits holds the band edges in kHz. Bounds are exclusive at both ends so
// that a frequency sitting exactly on an edge never resolves to two bands.
var limits = map[Band][2]float64{
	Band160M:  {1800, 2000},
	Band80M:   {3500, 4000},
	Band60M:   {5330, 5410},
	Band40M:   {7000, 7300},
	Band30M:   {10100, 10150},
	Band20M:   {14000, 14350},
	Band17M:   {18068, 18168},
	Band15M:   {21000, 21450},
	Band12M:   {24890, 24990},
	Band10M:   {28000, 29700},
	Band6M:    {50000, 54000},
	Band2M:    {144000, 148000},
	Band125CM: {222000, 225000},
	Band70CM:  {420000, 450000},
	Band33CM:  {902000, 928000},
	Band23CM:  {1240000, 1300000},
}

var names = map[Band]string{
	NoBand:    "",
	Band160M:  "160m",
	Band80M:   "80m",
	Band60M:   "60m",
	Band40M:   "40m",
	Band30M:   "30m",
	Band20M:   "20m",
	Band17M:   "17m",
	Band15M:   "15m",
	Band12M:   "12m",
	Band10M:   "10m",
	Band6M:    "6m",
	Band2M:    "2m",
	Band125CM: "1.25m",
	Band70CM:  "70cm",
	Band33CM:  "33cm",
	Band23CM:  "23cm",
}

// All lists every classifiable band in canonical order, longest wavelength
// first. Consumers that aggregate per band iterate this slice so their
// output order is stable.
var All = []Band{
	Band160M, Band80M, Band60M, Band40M, Band30M, Band20M, Band17M,
	Band15M, Band12M, Band10M, Band6M, Band2M, Band125CM, Band70CM,
	Band33CM, Band23CM,
}

// Classify maps a frequency in kHz, given as text, to its band. It returns
// NoBand when the value does not parse as a decimal number or falls outside
// every band. Callers treat NoBand as a valid outcome, not an error.
func Classify(frequency string) Band {
	khz, err := strconv.ParseFloat(frequency, 64)
	if err != nil {
		return NoBand
	}
	return ClassifyKHz(khz)
}

// ClassifyKHz is Classify for an already parsed frequency.
func ClassifyKHz(khz float64) Band {
	for _, b := range All {
		lim := limits[b]
		if khz > lim[0] && khz < lim[1] {
			return b
		}
	}
	return NoBand
}

// Limits returns the lower and upper band edge in kHz. Both edges are
// outside the band per the exclusive-bound rule. The result for NoBand or
// an unknown band is (0, 0).
func (b Band) Limits() (lower, upper float64) {
	lim, ok := limits[b]
	if !ok {
		return 0, 0
	}
	return lim[0], lim[1]
}

// Name returns the display name of the band, e.g. "20m". NoBand yields an
// empty string.
func (b Band) Name() string {
	return names[b]
}

// FromName resolves a display name back to a Band. Unknown names resolve to
// NoBand.
func FromName(name string) Band {
	for b, n := range names {
		if n == name && b != NoBand {
			return b
		}
	}
	return NoBand
}
