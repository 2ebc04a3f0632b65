package forecast

import (
	"fmt"
	"strconv"
	"strings"

	"agriyield/domain/core"
	"agriyield/domain/tabular"
)

// InputRecord is the loosely-typed prediction input: feature name to
// numeric or pre-encoding categorical value. Unknown keys are ignored;
// schema columns absent from the record default to zero.
type InputRecord map[string]any

// inputValue is an InputRecord entry coerced at the boundary
type inputValue struct {
	num   float64
	str   string
	isNum bool
}

// coerceInput converts an arbitrary record value into either a number or a
// category string. Numeric strings coerce to numbers so JSON clients may
// send either form.
func coerceInput(v any) (inputValue, error) {
	switch val := v.(type) {
	case float64:
		return inputValue{num: val, isNum: true}, nil
	case float32:
		return inputValue{num: float64(val), isNum: true}, nil
	case int:
		return inputValue{num: float64(val), isNum: true}, nil
	case int64:
		return inputValue{num: float64(val), isNum: true}, nil
	case bool:
		if val {
			return inputValue{num: 1, isNum: true}, nil
		}
		return inputValue{num: 0, isNum: true}, nil
	case string:
		trimmed := strings.TrimSpace(val)
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return inputValue{num: f, str: trimmed, isNum: true}, nil
		}
		return inputValue{str: trimmed}, nil
	case nil:
		return inputValue{}, fmt.Errorf("nil value")
	default:
		return inputValue{}, fmt.Errorf("unsupported type %T", v)
	}
}

// TransformRecord reproduces the training-time transformation for one raw
// input record: coerce values, compute the engineered features their source
// columns allow, default-fill the rest of the schema with zero, encode
// categoricals, and emit the feature vector in exact schema order.
//
// The record and the transformers are never mutated. Unseen category
// values handled by a fallback policy are returned in unseen so the caller
// can log them under UnseenWarnFallback.
func TransformRecord(input InputRecord, schema FeatureSchema, encoders map[string]*CategoryEncoder, policy UnseenPolicy) (vector []float64, unseen []string, err error) {
	values := make(map[string]inputValue, len(input))
	for key, raw := range input {
		cv, cerr := coerceInput(raw)
		if cerr != nil {
			return nil, nil, core.NewDataError("transform",
				fmt.Sprintf("field %s: %v", key, cerr))
		}
		values[key] = cv
	}

	deriveFeatures(values, schema)

	vector = make([]float64, schema.Len())
	for i, column := range schema.Columns {
		val, present := values[column]

		if enc, ok := encoders[column]; ok {
			if !present {
				// Absent categorical defaults to the zero code, same as
				// the numeric default-fill
				vector[i] = float64(FallbackCode)
				continue
			}
			raw := val.str
			if raw == "" && val.isNum {
				raw = strconv.FormatFloat(val.num, 'g', -1, 64)
			}
			code, seen, encErr := enc.Encode(raw, policy)
			if encErr != nil {
				return nil, nil, encErr
			}
			if !seen {
				unseen = append(unseen, column)
			}
			vector[i] = float64(code)
			continue
		}

		if !present {
			vector[i] = 0
			continue
		}
		if !val.isNum {
			return nil, nil, core.NewSchemaMismatchError(
				fmt.Sprintf("column %s expects a numeric value, got %q", column, val.str))
		}
		vector[i] = val.num
	}

	return vector, unseen, nil
}

// deriveFeatures fills in the engineered features the schema expects when
// the caller supplied their source columns but not the feature itself
func deriveFeatures(values map[string]inputValue, schema FeatureSchema) {
	n, hasN := numericValue(values, ColNitrogen)
	p, hasP := numericValue(values, ColPhosphorus)
	k, hasK := numericValue(values, ColPotassium)
	if hasN && hasP && hasK {
		setDerived(values, schema, FeatureNPKRatio, npkRatio(n, p, k))
		setDerived(values, schema, FeatureSoilFertility, soilFertility(n, p, k))
	}

	temp, hasTemp := numericValue(values, tabular.ColTemp)
	rain, hasRain := numericValue(values, tabular.ColRainfall)
	if hasTemp && hasRain {
		setDerived(values, schema, FeatureTempRainfall, tempRainfall(temp, rain))
	}
}

func numericValue(values map[string]inputValue, key string) (float64, bool) {
	v, ok := values[key]
	if !ok || !v.isNum {
		return 0, false
	}
	return v.num, true
}

func setDerived(values map[string]inputValue, schema FeatureSchema, column string, v float64) {
	if _, inSchema := schema.Index(column); !inSchema {
		return
	}
	if _, supplied := values[column]; supplied {
		return
	}
	values[column] = inputValue{num: v, isNum: true}
}
