package models

// ===== AGGREGATION DTOs =====

type CourseCount struct {
	Course string `json:"course"`
	Count  int64  `json:"count"`
}

type MonthlyEnrollment struct {
	Month string `json:"month"` // "2026-03"
	Count int64  `json:"count"`
}
