package curriculum

import (
	"math/rand"

	"github.com/michalchudziak/NaukaLiluka-sub000/internal/domain"
)

// operatorCycle maps the day within a category onto the day's operator.
var operatorCycle = []domain.Operator{
	domain.OperatorAdd,
	domain.OperatorSubtract,
	domain.OperatorMultiply,
	domain.OperatorDivide,
	domain.OperatorMixed,
}

// decimalDivisors keeps decimal quotients short.
var decimalDivisors = []int64{2, 4, 5, 10}

const maxIntegerDivisor = 10

// EquationsScheme generates the equations track.
type EquationsScheme struct {
	Params EquationsParams
}

// NewEquationsScheme creates a scheme with params.
func NewEquationsScheme(params EquationsParams) EquationsScheme {
	return EquationsScheme{Params: params}
}

// Track implements Scheme.
func (EquationsScheme) Track() domain.Track { return domain.TrackEquations }

// Initial implements Scheme.
func (EquationsScheme) Initial() domain.ProgressState {
	return domain.NewProgressState(domain.CategoryInteger)
}

// Generate implements Scheme.
func (s EquationsScheme) Generate(state domain.ProgressState, rng *rand.Rand) domain.EquationsDailyData {
	return GenerateEquations(state, s.Params, rng)
}

// Advance implements Scheme. Finishing the last day of a category restarts
// the day counter in the next category.
func (s EquationsScheme) Advance(state domain.ProgressState) domain.ProgressState {
	next := state.Clone()
	if !next.CurrentCategory.IsValid() {
		next.CurrentCategory = domain.CategoryInteger
	}
	next.CurrentDay++
	if next.CurrentDay > s.Params.Duration(next.CurrentCategory) {
		next.CurrentDay = 1
		next.CurrentCategory = next.CurrentCategory.Next()
	}
	next.ClearLedger()
	return next
}

// OperatorForDay returns the operator set of the day within a category.
func OperatorForDay(day int) domain.Operator {
	if day < 1 {
		day = 1
	}
	return operatorCycle[(day-1)%len(operatorCycle)]
}

// GenerateEquations returns the equations track content for state. Every
// session shares the same equation list.
func GenerateEquations(state domain.ProgressState, p EquationsParams, rng *rand.Rand) domain.EquationsDailyData {
	day := state.CurrentDay
	if day < 1 {
		day = 1
	}
	category := state.CurrentCategory
	if !category.IsValid() {
		category = domain.CategoryInteger
	}
	op := OperatorForDay(day)

	sessions := make([]domain.Session, p.SessionsPerDay)
	for i := range sessions {
		sessions[i] = domain.Session{{Type: domain.SessionTypeEquations, IsOrdered: false}}
	}

	equations := make([]domain.Equation, p.EquationsPerSession)
	for i := range equations {
		equations[i] = GenerateEquation(category, op, p, rng)
	}

	return domain.EquationsDailyData{
		Schedule: domain.Schedule{
			ActiveDay:      day,
			SessionContent: sessions,
		},
		Category:  category,
		Operator:  op,
		Equations: equations,
	}
}

// GenerateEquation returns one exact equation of category using op. The
// mixed operator picks one of the concrete operators at random.
func GenerateEquation(category domain.Category, op domain.Operator, p EquationsParams, rng *rand.Rand) domain.Equation {
	if op == domain.OperatorMixed || op == "" {
		op = domain.ConcreteOperators[rng.Intn(len(domain.ConcreteOperators))]
	}
	switch category {
	case domain.CategoryFraction:
		return decimalEquation(op, p, rng)
	case domain.CategoryNegative:
		return signedEquation(op, p, rng)
	case domain.CategoryPercentage:
		return percentEquation(op, p, rng)
	default:
		return integerEquation(op, p, rng)
	}
}

func integerEquation(op domain.Operator, p EquationsParams, rng *rand.Rand) domain.Equation {
	var a, b int64
	switch op {
	case domain.OperatorAdd:
		a, b = between(rng, 1, p.MaxAddend), between(rng, 1, p.MaxAddend)
	case domain.OperatorSubtract:
		a = between(rng, 1, p.MaxAddend)
		b = between(rng, 0, int(a))
	case domain.OperatorMultiply:
		a, b = between(rng, 1, p.MaxFactor), between(rng, 1, p.MaxFactor)
	default:
		a = between(rng, 2, p.MaxDividend)
		b = pickDivisor(a, rng)
	}
	return build(domain.Int(a), op, domain.Int(b), domain.Int)
}

func signedEquation(op domain.Operator, p EquationsParams, rng *rand.Rand) domain.Equation {
	var a, b int64
	switch op {
	case domain.OperatorAdd, domain.OperatorSubtract:
		a, b = between(rng, -p.MaxAddend, p.MaxAddend), between(rng, -p.MaxAddend, p.MaxAddend)
	case domain.OperatorMultiply:
		a, b = between(rng, -p.MaxFactor, p.MaxFactor), between(rng, -p.MaxFactor, p.MaxFactor)
	default:
		a = between(rng, -p.MaxDividend, p.MaxDividend)
		if a == 0 {
			a = -between(rng, 2, p.MaxDividend)
		}
		b = pickDivisor(a, rng)
		if rng.Intn(2) == 0 {
			b = -b
		}
	}
	return build(domain.Int(a), op, domain.Int(b), domain.Int)
}

func decimalEquation(op domain.Operator, p EquationsParams, rng *rand.Rand) domain.Equation {
	switch op {
	case domain.OperatorAdd:
		a, b := between(rng, 1, p.MaxAddend*100), between(rng, 1, p.MaxAddend*100)
		return build(domain.Hundredths(a), op, domain.Hundredths(b), domain.Hundredths)
	case domain.OperatorSubtract:
		a := between(rng, 1, p.MaxAddend*100)
		b := between(rng, 1, int(a))
		return build(domain.Hundredths(a), op, domain.Hundredths(b), domain.Hundredths)
	case domain.OperatorMultiply:
		a, b := between(rng, 1, p.MaxFactor*100), between(rng, 1, p.MaxFactor)
		return build(domain.Hundredths(a), op, domain.Int(b), domain.Hundredths)
	default:
		a := between(rng, 1, p.MaxDividend*100)
		return build(domain.Hundredths(a), op, domain.Int(pickFrom(a, decimalDivisors, rng)), domain.Hundredths)
	}
}

func percentEquation(op domain.Operator, p EquationsParams, rng *rand.Rand) domain.Equation {
	switch op {
	case domain.OperatorAdd:
		a, b := 5*between(rng, 1, 10), 5*between(rng, 1, 10)
		return build(domain.Percent(a), op, domain.Percent(b), domain.Percent)
	case domain.OperatorSubtract:
		a := 5 * between(rng, 2, 20)
		b := 5 * between(rng, 1, int(a/5))
		return build(domain.Percent(a), op, domain.Percent(b), domain.Percent)
	case domain.OperatorMultiply:
		a, b := 5*between(rng, 1, 10), between(rng, 2, 4)
		return build(domain.Percent(a), op, domain.Int(b), domain.Percent)
	default:
		a := 10 * between(rng, 1, 10)
		return build(domain.Percent(a), op, domain.Int(pickDivisor(a, rng)), domain.Percent)
	}
}

// build evaluates left op right in integer units and wraps the result with format.
func build(left domain.Number, op domain.Operator, right domain.Number, format func(int64) domain.Number) domain.Equation {
	l, r := left.Units, right.Units
	var res int64
	switch op {
	case domain.OperatorAdd:
		res = l + r
	case domain.OperatorSubtract:
		res = l - r
	case domain.OperatorMultiply:
		res = l * r
	case domain.OperatorDivide:
		res = l / r
	}
	return domain.Equation{Left: left, Operator: op, Right: right, Result: format(res)}
}

// pickDivisor returns a random divisor d of a with 2 <= d < |a| and d <= 10,
// or 1 when a has none.
func pickDivisor(a int64, rng *rand.Rand) int64 {
	abs := a
	if abs < 0 {
		abs = -abs
	}
	var candidates []int64
	for d := int64(2); d < abs && d <= maxIntegerDivisor; d++ {
		if abs%d == 0 {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return 1
	}
	return candidates[rng.Intn(len(candidates))]
}

// pickFrom returns a random element of set that divides units exactly, or 1.
func pickFrom(units int64, set []int64, rng *rand.Rand) int64 {
	var candidates []int64
	for _, d := range set {
		if units%d == 0 {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return 1
	}
	return candidates[rng.Intn(len(candidates))]
}

// between returns a uniform value in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int64 {
	if hi <= lo {
		return int64(lo)
	}
	return int64(lo + rng.Intn(hi-lo+1))
}
