package dto

// NonDeletedReportQuery restricts the non-deleted products report.
// Dates are ISO timestamps or plain dates; withPrice is a string enum so the
// three-valued choice (unset/true/false) survives query binding.
type NonDeletedReportQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	WithPrice string `form:"withPrice" binding:"omitempty,oneof=true false"`
}

// ModelsByBrandQuery restricts the models-by-brand report.
type ModelsByBrandQuery struct {
	// Brands is a comma-separated, case-insensitive allowlist.
	Brands string `form:"brands"`
}
