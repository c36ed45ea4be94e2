package rental

import "context"

// SeedSampleData loads the demo portfolio into an empty store. A store
// that already has properties is left alone; returns whether seeding ran.
func SeedSampleData(ctx context.Context, store Store) (bool, error) {
	existing, err := store.ListProperties(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	properties := []Property{
		{ID: "prop-1", Name: "Bura Paradise"},
		{ID: "prop-2", Name: "Lily House"},
		{ID: "prop-3", Name: "28/12 Maenam Soi 5"},
	}
	units := []Unit{
		{ID: "unit-1", PropertyID: "prop-3", Name: "MaenamHouse", Description: "3 bedroom, 2 bathroom house with yard", DailyRate: 500, WeeklyRate: 3000, MonthlyRate: 15000, MonthlyWaterCharge: 200},
		{ID: "unit-2", PropertyID: "prop-1", Name: "Bura1", Description: "Studio apartment", DailyRate: 500, WeeklyRate: 3000, MonthlyRate: 9000, MonthlyWaterCharge: 200},
		{ID: "unit-3", PropertyID: "prop-2", Name: "Lily1", Description: "Small apartment, bathroom on balcony, fake staircase", DailyRate: 500, WeeklyRate: 3000, MonthlyRate: 7500, MonthlyWaterCharge: 200},
		{ID: "unit-4", PropertyID: "prop-2", Name: "Lily2", Description: "Large apartment", DailyRate: 500, WeeklyRate: 3000, MonthlyRate: 9500, MonthlyWaterCharge: 200},
		{ID: "unit-5", PropertyID: "prop-2", Name: "Lily3", Description: "Large apartment", DailyRate: 500, WeeklyRate: 3000, MonthlyRate: 9000, MonthlyWaterCharge: 200},
	}

	for _, p := range properties {
		if err := store.SaveProperty(ctx, p); err != nil {
			return false, err
		}
	}
	for _, u := range units {
		if err := store.SaveUnit(ctx, u); err != nil {
			return false, err
		}
	}
	return true, nil
}
