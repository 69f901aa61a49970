package order

import (
	"errors"
	"math"

	"rasoighar/internal/dish"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrUnitMismatch    = errors.New("unit mismatch")
)

// ComputeScale returns requestedQuantity / baseQuantity at full float
// precision. Both values must be strictly positive finite numbers;
// rounding, if any, happens only at presentation time.
func ComputeScale(baseQuantity, requestedQuantity float64) (float64, error) {
	if !(baseQuantity > 0) || !(requestedQuantity > 0) ||
		math.IsInf(baseQuantity, 0) || math.IsInf(requestedQuantity, 0) {
		return 0, ErrInvalidQuantity
	}
	return requestedQuantity / baseQuantity, nil
}

// Override replaces the derived amount for one recipe ingredient.
// A nil ScaledAmount means the entry is malformed and gets skipped.
type Override struct {
	IngredientID int64    `json:"ingredient_id"`
	ScaledAmount *float64 `json:"scaled_amount"`
	Unit         string   `json:"unit"`
}

// ScaleRecipe derives the ingredient lines for one order item.
//
// Without overrides every recipe line is scaled in place:
// scaled_amount = amount_per_base * scale, recipe order preserved.
//
// A non-empty override list is a full replacement set, not a patch:
// recipe ingredients it does not mention are absent from the output.
// Overrides referencing ingredients outside the recipe, or carrying a
// negative or missing amount, are skipped without error; zero amounts
// are kept (they mean "omit this ingredient for this batch"). An
// override without a unit falls back to the recipe line's unit.
func ScaleRecipe(recipe []dish.RecipeLine, scale float64, overrides []Override) []Line {
	if len(overrides) == 0 {
		lines := make([]Line, 0, len(recipe))
		for _, rl := range recipe {
			lines = append(lines, Line{
				IngredientID:   rl.IngredientID,
				IngredientName: rl.IngredientName,
				ScaledAmount:   rl.AmountPerBase * scale,
				Unit:           rl.Unit,
			})
		}
		return lines
	}

	byIngredient := make(map[int64]dish.RecipeLine, len(recipe))
	for _, rl := range recipe {
		byIngredient[rl.IngredientID] = rl
	}

	lines := make([]Line, 0, len(overrides))
	for _, ov := range overrides {
		rl, tracked := byIngredient[ov.IngredientID]
		if !tracked {
			continue
		}
		if ov.ScaledAmount == nil || math.IsNaN(*ov.ScaledAmount) || *ov.ScaledAmount < 0 {
			continue
		}
		unit := ov.Unit
		if unit == "" {
			unit = rl.Unit
		}
		lines = append(lines, Line{
			IngredientID:   rl.IngredientID,
			IngredientName: rl.IngredientName,
			ScaledAmount:   *ov.ScaledAmount,
			Unit:           unit,
		})
	}
	return lines
}
