package models

// Compliance status labels derived from the numeric score.
const (
	StatusExcellent = "Excellent"
	StatusGood      = "Good"
	StatusAverage   = "Average"
	StatusPoor      = "Poor"
	StatusNoData    = "No Data"
)

// ComplianceScore is the 0-100 compliance score with its letter grade.
// Score is nil when there are zero applicable returns; "no data" must never
// be reported as a zero score.
type ComplianceScore struct {
	Score  *float64 `json:"score"`
	Grade  string   `json:"grade"` // "A+", "A", "B", "C", "D"; empty when no data
	Status string   `json:"status"`
}

// YearlyStat aggregates filing outcomes for one financial year.
type YearlyStat struct {
	FinancialYear string  `json:"financial_year"`
	TotalDue      int     `json:"total_due"`
	FiledCount    int     `json:"filed_count"`
	LateCount     int     `json:"late_count"`
	Rate          float64 `json:"rate"` // filed_count / total_due, 0 when total_due is 0
}

// TrendDirection classifies the multi-year filing trajectory.
type TrendDirection string

const (
	TrendImproving    TrendDirection = "Improving"
	TrendDeclining    TrendDirection = "Declining"
	TrendStable       TrendDirection = "Stable"
	TrendInsufficient TrendDirection = "Insufficient Data"
)

// TrendResult is the multi-year classification plus the per-year stats it
// was derived from, in chronological order.
type TrendResult struct {
	Direction TrendDirection `json:"direction"`
	Years     []YearlyStat   `json:"years"`
}

// RiskLevel is the qualitative risk bucket.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskAssessment is the monetary and qualitative risk view.
// An empty RedFlags list is a valid, meaningful state.
type RiskAssessment struct {
	ComplianceRisk    string    `json:"compliance_risk"`
	RiskLevel         RiskLevel `json:"risk_level"`
	PenaltyRiskAmount float64   `json:"penalty_risk_amount"` // ₹
	RedFlags          []string  `json:"red_flags"`
}

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is one actionable item produced by the rule table.
type Recommendation struct {
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Action      string   `json:"action"`
}

// BusinessProfile carries taxpayer metadata passed through from the input.
type BusinessProfile struct {
	GSTIN            string `json:"gstin"`
	LegalName        string `json:"legal_name"`
	TradeName        string `json:"trade_name,omitempty"`
	RegistrationDate *Date  `json:"registration_date,omitempty"`
	Status           string `json:"status,omitempty"`
	State            string `json:"state,omitempty"`
}

// KeyMetrics is the small headline-number set for dashboards and exports.
type KeyMetrics struct {
	YearsInBusiness int     `json:"years_in_business"`
	FilingRatePct   float64 `json:"filing_rate_pct"`
	Grade           string  `json:"grade"`
	TotalReturns    int     `json:"total_returns"`
	OnTimeReturns   int     `json:"on_time_returns"`
	LateReturns     int     `json:"late_returns"`
}

// Synopsis is the complete analysis result handed to the rendering/export
// collaborator. It is composed of plain scalars, lists and flat records and
// serializes losslessly to JSON.
type Synopsis struct {
	Profile         BusinessProfile    `json:"business_profile"`
	Compliance      ComplianceScore    `json:"compliance_summary"`
	Trend           TrendResult        `json:"filing_trend"`
	Risk            RiskAssessment     `json:"risk_assessment"`
	Recommendations []Recommendation   `json:"recommendations"`
	Metrics         KeyMetrics         `json:"key_metrics"`
	Narrative       string             `json:"narrative"`
	DataQuality     []DataQualityIssue `json:"data_quality_issues"`
}
