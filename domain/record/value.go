package record

import (
	"math"
	"strconv"
	"strings"
)

// CellKind is the declared type of a spreadsheet cell
type CellKind int

const (
	KindBlank CellKind = iota
	KindNumeric
	KindString
	KindBoolean
	KindFormula
	KindError
)

func (k CellKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindFormula:
		return "formula"
	case KindError:
		return "error"
	}
	return "blank"
}

// Cell is one physically present spreadsheet cell. Raw is the unformatted
// stored value: the number text for numerics, "1"/"0" or "TRUE"/"FALSE" for
// booleans.
type Cell struct {
	Column int
	Kind   CellKind
	Raw    string
}

// EncodeValue flattens a cell to the text stored in the table. Numerics use
// the double rendering of FormatDouble, booleans become "true"/"false", and
// blank, formula and error cells become "".
func EncodeValue(c Cell) string {
	switch c.Kind {
	case KindNumeric:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.Raw), 64)
		if err != nil {
			return ""
		}
		return FormatDouble(f)
	case KindString:
		return c.Raw
	case KindBoolean:
		return strconv.FormatBool(parseBool(c.Raw))
	default:
		return ""
	}
}

func parseBool(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "1", "TRUE":
		return true
	}
	return false
}

// FormatDouble renders f the way the JVM renders a double: plain decimal with
// at least one fractional digit for 1e-3 <= |f| < 1e7, otherwise
// computerized scientific notation ("1.0E7", "1.5E-4").
func FormatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(f)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}
