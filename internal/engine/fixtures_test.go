package engine

import "salarydash/internal/models"

// rec builds a full-domain record with the given year, title and salary.
func rec(year int, title string, salary float64) models.Record {
	return models.Record{
		Year:        year,
		Seniority:   "senior",
		Contract:    "integral",
		CompanySize: "media",
		Title:       title,
		SalaryUSD:   salary,
		RemoteMode:  "remoto",
		Country:     "BRA",
	}
}

// scenarioStore holds five records with years {2020,2021,2021,2022,2022}
// and salaries {100..500}.
func scenarioStore() *ColumnStore {
	return FromRecords([]models.Record{
		rec(2020, "Engineer", 100),
		rec(2021, "Engineer", 200),
		rec(2021, "Analyst", 300),
		rec(2022, "Analyst", 400),
		rec(2022, "Data Scientist", 500),
	})
}

func mixedStore() *ColumnStore {
	records := []models.Record{
		{Year: 2023, Seniority: "senior", Contract: "integral", CompanySize: "grande", Title: "Data Scientist", SalaryUSD: 150000, RemoteMode: "remoto", Country: "USA"},
		{Year: 2023, Seniority: "junior", Contract: "integral", CompanySize: "media", Title: "Data Scientist", SalaryUSD: 50000, RemoteMode: "presencial", Country: "BRA"},
		{Year: 2024, Seniority: "pleno", Contract: "freelancer", CompanySize: "pequena", Title: "Data Scientist", SalaryUSD: 110000, RemoteMode: "remoto", Country: "USA"},
		{Year: 2024, Seniority: "senior", Contract: "integral", CompanySize: "grande", Title: "Data Engineer", SalaryUSD: 130000, RemoteMode: "hibrido", Country: "DEU"},
		{Year: 2024, Seniority: "senior", Contract: "temporario", CompanySize: "media", Title: "Data Scientist", SalaryUSD: 90000, RemoteMode: "hibrido"},
		{Year: 2025, Seniority: "executivo", Contract: "integral", CompanySize: "grande", Title: "Head of Data", SalaryUSD: 250000, RemoteMode: "remoto", Country: "GBR"},
	}
	return FromRecords(records)
}
