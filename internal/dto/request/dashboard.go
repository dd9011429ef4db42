package request

// Zero values mean "use the default period".
type DashboardRequest struct {
	Year  int `validate:"omitempty,min=2000,max=2100"`
	Month int `validate:"omitempty,min=1,max=12"`
}

type StatisticsRequest struct {
	StartYear int `validate:"omitempty,min=2000,max=2100"`
	EndYear   int `validate:"omitempty,min=2000,max=2100"`
}
