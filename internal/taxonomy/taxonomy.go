// internal/taxonomy/taxonomy.go
// Package taxonomy defines the fixed two-level vehicle telemetry taxonomy
// that parameterizes dataset generation.
package taxonomy

import "fmt"

// Category pairs a category key with its ordered subcategory names.
type Category struct {
	Name          string
	Subcategories []string
}

// table is the telemetry taxonomy. Order is significant: it defines the
// order categories are registered with the designer and reported in summaries.
var table = []Category{
	{
		Name: "vehicle_info_status",
		Subcategories: []string{
			"odometer_reading",
			"ignition_status",
			"vehicle_speed",
			"powertrain_type",
			"remaining_range",
		},
	},
	{
		Name: "location_data",
		Subcategories: []string{
			"latitude_longitude",
			"altitude",
			"approximate_location",
			"location_privacy_zones",
		},
	},
	{
		Name: "battery_charging",
		Subcategories: []string{
			"state_of_charge",
			"charging_status",
			"charge_limit",
			"battery_power",
			"charging_current_voltage",
			"gross_battery_capacity",
			"remaining_energy",
			"low_voltage_battery",
		},
	},
	{
		Name: "engine_metrics",
		Subcategories: []string{
			"engine_rpm",
			"throttle_position",
			"engine_air_intake",
			"oil_level",
			"coolant_temperature",
		},
	},
	{
		Name: "fuel_system",
		Subcategories: []string{
			"fuel_type",
			"fuel_percentage",
			"fuel_level_liters",
		},
	},
	{
		Name: "tire_pressure",
		Subcategories: []string{
			"front_left_wheel",
			"front_right_wheel",
			"rear_left_wheel",
			"rear_right_wheel",
		},
	},
	{
		Name: "doors_windows",
		Subcategories: []string{
			"front_driver_door",
			"front_passenger_door",
			"rear_driver_door",
			"rear_passenger_door",
			"front_driver_window",
			"front_passenger_window",
			"rear_driver_window",
			"rear_passenger_window",
		},
	},
	{
		Name: "diagnostics",
		Subcategories: []string{
			"diagnostic_trouble_codes",
			"engine_runtime",
			"intake_temperature",
			"engine_load",
			"barometric_pressure",
		},
	},
	{
		Name: "environmental",
		Subcategories: []string{
			"exterior_air_temperature",
		},
	},
	{
		Name: "device_connectivity",
		Subcategories: []string{
			"wifi_status",
			"ssid",
			"gps_satellites",
			"gps_precision",
		},
	},
}

// Categories returns the taxonomy in declaration order. Callers must not
// mutate the returned slices.
func Categories() []Category {
	return table
}

// CategoryNames returns the category keys in declaration order.
func CategoryNames() []string {
	names := make([]string, len(table))
	for i, c := range table {
		names[i] = c.Name
	}
	return names
}

// Subcategories returns the subcategory names declared for the given
// category, or nil if the category is unknown.
func Subcategories(category string) []string {
	for _, c := range table {
		if c.Name == category {
			return c.Subcategories
		}
	}
	return nil
}

// SubcategoryMap returns the category to subcategory mapping used to build
// the dependent sampler column.
func SubcategoryMap() map[string][]string {
	m := make(map[string][]string, len(table))
	for _, c := range table {
		m[c.Name] = c.Subcategories
	}
	return m
}

// Contains reports whether subcategory is declared under category.
func Contains(category, subcategory string) bool {
	for _, s := range Subcategories(category) {
		if s == subcategory {
			return true
		}
	}
	return false
}

// LeafCount returns the total number of subcategories across all categories.
func LeafCount() int {
	total := 0
	for _, c := range table {
		total += len(c.Subcategories)
	}
	return total
}

// Validate checks the structural invariants of the taxonomy: unique category
// keys, at least one subcategory per category, and no duplicate subcategory
// within a single category.
func Validate() error {
	seen := make(map[string]struct{}, len(table))
	for _, c := range table {
		if c.Name == "" {
			return fmt.Errorf("taxonomy contains an unnamed category")
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = struct{}{}

		if len(c.Subcategories) == 0 {
			return fmt.Errorf("category %q has no subcategories", c.Name)
		}
		subSeen := make(map[string]struct{}, len(c.Subcategories))
		for _, s := range c.Subcategories {
			if s == "" {
				return fmt.Errorf("category %q contains an unnamed subcategory", c.Name)
			}
			if _, dup := subSeen[s]; dup {
				return fmt.Errorf("duplicate subcategory %q in category %q", s, c.Name)
			}
			subSeen[s] = struct{}{}
		}
	}
	return nil
}
