package models

// DashboardData bundles every derived view of one filter selection.
type DashboardData struct {
	Summary            SummaryMetrics    `json:"summary"`
	TopTitles          []TitleSalary     `json:"top_titles"`
	SalaryDistribution []HistogramBin    `json:"salary_distribution"`
	RemoteModes        []RemoteModeCount `json:"remote_modes"`
	CountrySalaries    []CountrySalary   `json:"country_salaries"`
}

type SummaryMetrics struct {
	MeanSalary float64 `json:"mean_salary"`
	MaxSalary  float64 `json:"max_salary"`
	Records    int     `json:"records"`
	TopTitle   string  `json:"top_title"`
}

type TitleSalary struct {
	Title      string  `json:"title"`
	MeanSalary float64 `json:"mean_salary"`
}

// HistogramBin covers [Lower, Upper); the last bin of a distribution also includes Upper.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type RemoteModeCount struct {
	WorkType string `json:"work_type"`
	Count    int    `json:"count"`
}

type CountrySalary struct {
	Country    string  `json:"residence_iso3"`
	MeanSalary float64 `json:"mean_salary"`
}

// FilterOptions lists the selectable values of each filter dimension.
type FilterOptions struct {
	Years        []int    `json:"years"`
	Seniorities  []string `json:"seniorities"`
	Contracts    []string `json:"contracts"`
	CompanySizes []string `json:"company_sizes"`
}

// Record is one salary observation as exposed in the detail table.
type Record struct {
	Year        int     `json:"year"`
	Seniority   string  `json:"seniority"`
	Contract    string  `json:"contract"`
	CompanySize string  `json:"company_size"`
	Title       string  `json:"title"`
	SalaryUSD   float64 `json:"salary_usd"`
	RemoteMode  string  `json:"remote_mode"`
	Country     string  `json:"residence_iso3,omitempty"`
}

type RecordPage struct {
	Data   []Record `json:"data"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}
