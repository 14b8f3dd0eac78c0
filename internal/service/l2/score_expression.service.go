package l2_service

import (
	"errors"
	"fmt"
	"math"

	"github.com/maja42/goval"
)

// ScoreInputs are the variables a score expression can reference
type ScoreInputs struct {
	Correlation       float64
	ZScore            float64
	MeanReversionProb float64
	Risk              float64
	Reward            float64
}

var ErrInvalidScoreExpression = errors.New("invalid score expression")

// ScoreExpressionService lets callers replace the default composite score
// with their own formula, e.g.
//
//	abs(correlation) * 2 + meanReversionProb * 3 + abs(zScore)
type ScoreExpressionService interface {
	Validate(expression string) error
	Evaluate(expression string, in ScoreInputs) (float64, error)
}

func NewScoreExpressionService() ScoreExpressionService {
	return scoreExpressionServiceHandler{}
}

type scoreExpressionServiceHandler struct{}

func (h scoreExpressionServiceHandler) Validate(expression string) error {
	// dry run on neutral inputs so typos surface before any prices are fetched
	_, err := h.Evaluate(expression, ScoreInputs{
		Correlation:       0.5,
		ZScore:            1,
		MeanReversionProb: 0.5,
		Risk:              1,
		Reward:            1,
	})
	if err != nil {
		return fmt.Errorf("%w %q: %s", ErrInvalidScoreExpression, expression, err.Error())
	}
	return nil
}

func (h scoreExpressionServiceHandler) Evaluate(expression string, in ScoreInputs) (float64, error) {
	eval := goval.NewEvaluator()
	variables := map[string]interface{}{
		"correlation":       in.Correlation,
		"zScore":            in.ZScore,
		"meanReversionProb": in.MeanReversionProb,
		"risk":              in.Risk,
		"reward":            in.Reward,
	}

	result, err := eval.Evaluate(expression, variables, constructFunctionMap())
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate score expression: %w", err)
	}

	r, err := toFloat(result)
	if err != nil {
		return 0, err
	} else if math.IsNaN(r) {
		return 0, fmt.Errorf("calculated NaN as expression result")
	} else if math.IsInf(r, 0) {
		return 0, fmt.Errorf("calculated infinity as expression result")
	}

	return r, nil
}

func constructFunctionMap() map[string]goval.ExpressionFunction {
	unary := func(name string, fn func(float64) float64) goval.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("%s needs 1 arg, got %d", name, len(args))
			}
			x, err := toFloat(args[0])
			if err != nil {
				return nil, err
			}
			return fn(x), nil
		}
	}
	binary := func(name string, fn func(float64, float64) float64) goval.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("%s needs 2 args, got %d", name, len(args))
			}
			x, err := toFloat(args[0])
			if err != nil {
				return nil, err
			}
			y, err := toFloat(args[1])
			if err != nil {
				return nil, err
			}
			return fn(x, y), nil
		}
	}

	return map[string]goval.ExpressionFunction{
		"abs":  unary("abs", math.Abs),
		"sqrt": unary("sqrt", math.Sqrt),
		"max":  binary("max", math.Max),
		"min":  binary("min", math.Min),
		"pow":  binary("pow", math.Pow),
	}
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}
