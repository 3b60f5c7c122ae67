package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Operator is an arithmetic operation of the equations track.
type Operator string

// Equation operators. OperatorMixed only appears as a day's operator set;
// individual equations always carry one of the four concrete operators.
const (
	OperatorAdd      Operator = "add"
	OperatorSubtract Operator = "subtract"
	OperatorMultiply Operator = "multiply"
	OperatorDivide   Operator = "divide"
	OperatorMixed    Operator = "mixed"
)

// ConcreteOperators lists the operators an individual equation may use.
var ConcreteOperators = []Operator{OperatorAdd, OperatorSubtract, OperatorMultiply, OperatorDivide}

// Symbol returns the display symbol of o.
func (o Operator) Symbol() string {
	switch o {
	case OperatorAdd:
		return "+"
	case OperatorSubtract:
		return "-"
	case OperatorMultiply:
		return "×"
	case OperatorDivide:
		return "÷"
	default:
		return "?"
	}
}

// NumberFormat tells how the units of a Number are scaled and displayed.
type NumberFormat string

// Number formats.
const (
	FormatInteger NumberFormat = "integer"
	FormatDecimal NumberFormat = "decimal"
	FormatPercent NumberFormat = "percent"
)

// Number is an exact equation operand. Decimal numbers hold hundredths in
// Units; integers and percents hold whole values.
type Number struct {
	Units  int64        `json:"units"`
	Format NumberFormat `json:"format"`
}

// Int returns an integer Number.
func Int(v int64) Number { return Number{Units: v, Format: FormatInteger} }

// Hundredths returns a decimal Number of v/100.
func Hundredths(v int64) Number { return Number{Units: v, Format: FormatDecimal} }

// Percent returns a percent Number of v%.
func Percent(v int64) Number { return Number{Units: v, Format: FormatPercent} }

// Scale is the number of units per whole value.
func (n Number) Scale() int64 {
	if n.Format == FormatDecimal {
		return 100
	}
	return 1
}

// Float returns the numeric value of n. Percents are returned as written,
// so 25% yields 25.
func (n Number) Float() float64 {
	return float64(n.Units) / float64(n.Scale())
}

// String renders n for display, trimming trailing decimal zeros.
func (n Number) String() string {
	switch n.Format {
	case FormatDecimal:
		sign := ""
		u := n.Units
		if u < 0 {
			sign = "-"
			u = -u
		}
		whole, frac := u/100, u%100
		if frac == 0 {
			return sign + strconv.FormatInt(whole, 10)
		}
		fs := strings.TrimRight(strconv.FormatInt(100+frac, 10)[1:], "0")
		return sign + strconv.FormatInt(whole, 10) + "." + fs
	case FormatPercent:
		return strconv.FormatInt(n.Units, 10) + "%"
	default:
		return strconv.FormatInt(n.Units, 10)
	}
}

// MarshalJSON adds the display text and numeric value next to the exact units.
func (n Number) MarshalJSON() ([]byte, error) {
	type wire struct {
		Units  int64        `json:"units"`
		Format NumberFormat `json:"format"`
		Value  float64      `json:"value"`
		Text   string       `json:"text"`
	}
	return json.Marshal(wire{Units: n.Units, Format: n.Format, Value: n.Float(), Text: n.String()})
}

// Equation is one generated exercise "Left op Right = Result".
type Equation struct {
	Left     Number   `json:"left"`
	Operator Operator `json:"operator"`
	Right    Number   `json:"right"`
	Result   Number   `json:"result"`
}

// String renders the equation, e.g. "12 + 7 = 19".
func (e Equation) String() string {
	return e.Left.String() + " " + e.Operator.Symbol() + " " + e.Right.String() + " = " + e.Result.String()
}

// Holds reports whether the equation is exact in integer units. Additive
// operands share Left's scale; multiplicative right operands are whole.
func (e Equation) Holds() bool {
	l, r, res := e.Left.Units, e.Right.Units, e.Result.Units
	switch e.Operator {
	case OperatorAdd:
		return l+r == res
	case OperatorSubtract:
		return l-r == res
	case OperatorMultiply:
		return l*r == res
	case OperatorDivide:
		return r != 0 && res*r == l
	default:
		return false
	}
}

// EquationsDailyData is the day's content for the equations track.
type EquationsDailyData struct {
	Schedule
	Category  Category   `json:"category"`
	Operator  Operator   `json:"operator"`
	Equations []Equation `json:"equations"`
}
