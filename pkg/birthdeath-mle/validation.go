package birthdeathmle

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// DomainError signals an argument outside the mathematical domain of the
// likelihood: a non-positive rate, elapsed time, or population count. It
// typically means an optimizer proposed an invalid parameter and should
// reject it rather than retry.
type DomainError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", e.Field, e.Message)
}

// NumericalDomainError signals that an intermediate quantity left its valid
// range by more than round-off tolerance. It carries the full evaluation
// context so the caller can decide whether to retry with a finer step or
// higher precision.
type NumericalDomainError struct {
	I        int     `json:"i"`
	J        int     `json:"j"`
	T        float64 `json:"t"`
	Lambda   float64 `json:"lambda"`
	Mu       float64 `json:"mu"`
	Quantity string  `json:"quantity"`
	Value    float64 `json:"value"`
}

func (e NumericalDomainError) Error() string {
	return fmt.Sprintf("numerical domain error: %s = %g outside valid range for i=%d, j=%d, t=%g, lambda=%g, mu=%g",
		e.Quantity, e.Value, e.I, e.J, e.T, e.Lambda, e.Mu)
}

// ShapeMismatchError signals inconsistent observation container dimensions.
// It indicates a bug in the external data-construction path, never a
// recoverable condition.
type ShapeMismatchError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch in %s: %s", e.Field, e.Message)
}

// validateRates checks that both rates are strictly positive. The negated
// comparisons also reject NaN.
func validateRates[F constraints.Float](rates Rates[F]) error {
	if !(rates.Lambda > 0) {
		return DomainError{Field: "lambda", Message: fmt.Sprintf("birth rate must be strictly positive, got %v", float64(rates.Lambda))}
	}
	if !(rates.Mu > 0) {
		return DomainError{Field: "mu", Message: fmt.Sprintf("death rate must be strictly positive, got %v", float64(rates.Mu))}
	}
	return nil
}

// validateStats checks that the sufficient statistics are non-negative.
func validateStats[F constraints.Float](o ContinuousObservation[F]) error {
	checks := []struct {
		field string
		value F
	}{
		{"sum_log_n", o.SumLogN},
		{"tot_births", o.Births},
		{"tot_deaths", o.Deaths},
		{"integrated_jump", o.PopulationTime},
	}
	for _, c := range checks {
		if !(c.value >= 0) {
			return DomainError{Field: c.field, Message: fmt.Sprintf("sufficient statistic must be non-negative, got %v", float64(c.value))}
		}
	}
	return nil
}

// validatePanel checks the equal-step panel dimensions: at least one time
// point and rectangular rows with at least one replicate column.
func validatePanel[F constraints.Float](o EqualStepObservation[F]) error {
	if len(o.State) == 0 {
		return ShapeMismatchError{Field: "state", Message: "panel has no observation rows"}
	}
	width := len(o.State[0])
	if width == 0 {
		return ShapeMismatchError{Field: "state", Message: "panel has no replicate columns"}
	}
	for s, row := range o.State {
		if len(row) != width {
			return ShapeMismatchError{
				Field:   fmt.Sprintf("state[%d]", s),
				Message: fmt.Sprintf("row has %d columns, expected %d", len(row), width),
			}
		}
	}
	return nil
}

// validatePath checks the irregular observation dimensions: a non-empty
// state sequence and exactly one waiting time per transition.
func validatePath[F constraints.Float](o UnequalStepObservation[F]) error {
	if len(o.State) == 0 {
		return ShapeMismatchError{Field: "state", Message: "observation has no state entries"}
	}
	if len(o.WaitingTimes) != len(o.State)-1 {
		return ShapeMismatchError{
			Field:   "waiting_time",
			Message: fmt.Sprintf("got %d waiting times for %d states, expected %d", len(o.WaitingTimes), len(o.State), len(o.State)-1),
		}
	}
	return nil
}
